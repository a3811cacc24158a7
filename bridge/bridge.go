// Package bridge carries events from the engine's internal goroutines to
// the consumer. Selection events are never dropped; raw input events are
// shed when the consumer falls behind.
package bridge

import (
	"log"
	"sync"
	"sync/atomic"

	"selection-hook/messages"
)

const (
	mouseQueueSize = 512
	keyQueueSize   = 128
	auxQueueSize   = 16
)

// Bridge fans engine output into per-kind channels. Publish methods are
// safe for concurrent use; Close makes all further publishes no-ops.
type Bridge struct {
	selCh   chan messages.SelectionEvent
	mouseCh chan messages.MouseEvent
	keyCh   chan messages.KeyboardEvent
	auxCh   chan messages.Message

	done      chan struct{}
	closeOnce sync.Once

	mouseDrops atomic.Uint64
	keyDrops   atomic.Uint64
}

func New() *Bridge {
	return &Bridge{
		selCh:   make(chan messages.SelectionEvent, 1),
		mouseCh: make(chan messages.MouseEvent, mouseQueueSize),
		keyCh:   make(chan messages.KeyboardEvent, keyQueueSize),
		auxCh:   make(chan messages.Message, auxQueueSize),
		done:    make(chan struct{}),
	}
}

// Selections delivers every detected selection, in order. The publisher
// blocks rather than drop, so the consumer must keep draining.
func (b *Bridge) Selections() <-chan messages.SelectionEvent { return b.selCh }

// Mouse delivers forwarded raw mouse events. Events are dropped when the
// consumer lags behind the queue.
func (b *Bridge) Mouse() <-chan messages.MouseEvent { return b.mouseCh }

// Keyboard delivers forwarded raw keyboard events, with the same
// shedding behavior as Mouse.
func (b *Bridge) Keyboard() <-chan messages.KeyboardEvent { return b.keyCh }

// Aux delivers status and error events.
func (b *Bridge) Aux() <-chan messages.Message { return b.auxCh }

// PublishSelection blocks until the consumer accepts the event or the
// bridge is closed.
func (b *Bridge) PublishSelection(ev messages.SelectionEvent) {
	select {
	case b.selCh <- ev:
	case <-b.done:
	}
}

// PublishMouse enqueues a raw mouse event, dropping it if the queue is
// full.
func (b *Bridge) PublishMouse(ev messages.MouseEvent) {
	select {
	case b.mouseCh <- ev:
	case <-b.done:
	default:
		if n := b.mouseDrops.Add(1); n == 1 || n%1000 == 0 {
			log.Printf("Mouse event queue full, dropped %d events so far", n)
		}
	}
}

// PublishKey enqueues a raw keyboard event, dropping it if the queue is
// full.
func (b *Bridge) PublishKey(ev messages.KeyboardEvent) {
	select {
	case b.keyCh <- ev:
	case <-b.done:
	default:
		if n := b.keyDrops.Add(1); n == 1 || n%1000 == 0 {
			log.Printf("Keyboard event queue full, dropped %d events so far", n)
		}
	}
}

// PublishAux enqueues a status or error event, dropping it if the queue
// is full.
func (b *Bridge) PublishAux(ev messages.Message) {
	select {
	case b.auxCh <- ev:
	case <-b.done:
	default:
	}
}

// Drops reports how many mouse and keyboard events were shed.
func (b *Bridge) Drops() (mouse, key uint64) {
	return b.mouseDrops.Load(), b.keyDrops.Load()
}

// Close unblocks pending publishers. Channels are left open so drained
// consumers see no spurious zero values.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
