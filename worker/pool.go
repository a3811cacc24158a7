// Package worker runs selection retrievals on a single dedicated OS
// thread with a 1-slot input queue (strict back-pressure). One thread,
// because the accessibility provider has thread affinity once bound.
package worker

import (
	"context"
	"log"
	"runtime"
	"sync"

	"selection-hook/gesture"
	"selection-hook/messages"
)

// RetrieveFunc executes one retrieval attempt on the worker thread.
type RetrieveFunc func(ctx context.Context, trig gesture.Trigger) (messages.SelectionResult, error)

// ResultCallback is invoked on retrieval completion, from the worker
// goroutine. Callers should pass a closure that posts back safely.
type ResultCallback func(res messages.SelectionResult, err error)

// Pool owns the retrieval thread. The accessibility provider is bound on
// that thread when the pool starts and unbound when it closes.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type job struct {
	ctx  context.Context
	trig gesture.Trigger
	cb   ResultCallback
}

// New starts the worker thread, binding the provider on it via bind.
// It returns bind's error if the provider could not be prepared.
func New(bind func() error, unbind func(), retrieve RetrieveFunc) (*Pool, error) {
	p := &Pool{jobs: make(chan job, 1)}
	bound := make(chan error, 1)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := bind(); err != nil {
			bound <- err
			return
		}
		bound <- nil
		defer unbind()

		for j := range p.jobs {
			res, err := retrieve(j.ctx, j.trig)
			if err != nil {
				log.Printf("Worker: retrieval failed: %v", err)
			}
			j.cb(res, err)
		}
	}()

	if err := <-bound; err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Submit enqueues a retrieval if the single-slot queue is free. Returns
// false if dropped or if the pool has closed; gesture bursts beyond one
// queued attempt are shed rather than replayed late. Safe against a
// concurrent Close.
func (p *Pool) Submit(ctx context.Context, trig gesture.Trigger, cb ResultCallback) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- job{ctx: ctx, trig: trig, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work. Idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
