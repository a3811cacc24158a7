package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"selection-hook/gesture"
	"selection-hook/messages"
)

func newTestPool(t *testing.T, retrieve RetrieveFunc) *Pool {
	t.Helper()
	p, err := New(func() error { return nil }, func() {}, retrieve)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestPoolSubmitDropWhenBusy(t *testing.T) {
	block := make(chan struct{})
	p := newTestPool(t, func(context.Context, gesture.Trigger) (messages.SelectionResult, error) {
		<-block
		return messages.SelectionResult{}, nil
	})
	defer p.Close()
	defer close(block)

	ctx := context.Background()
	trig := gesture.Trigger{Kind: gesture.KindDrag}
	cb := func(messages.SelectionResult, error) {}

	if !p.Submit(ctx, trig, cb) {
		t.Fatal("first submit should succeed")
	}
	// one occupies the worker, one the queue slot; by the third at the
	// latest the queue is full
	ok2 := p.Submit(ctx, trig, cb)
	ok3 := p.Submit(ctx, trig, cb)
	if ok2 && ok3 {
		t.Fatal("expected at least one submit to drop due to full queue")
	}
}

func TestPoolDeliversResult(t *testing.T) {
	p := newTestPool(t, func(_ context.Context, trig gesture.Trigger) (messages.SelectionResult, error) {
		return messages.SelectionResult{Text: "hello", PosLevel: messages.PosMouseDual}, nil
	})
	defer p.Close()

	got := make(chan messages.SelectionResult, 1)
	if !p.Submit(context.Background(), gesture.Trigger{}, func(res messages.SelectionResult, err error) {
		got <- res
	}) {
		t.Fatal("submit failed")
	}
	select {
	case res := <-got:
		if res.Text != "hello" {
			t.Errorf("Text = %q", res.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

func TestPoolSubmitAfterCloseRejected(t *testing.T) {
	p := newTestPool(t, func(context.Context, gesture.Trigger) (messages.SelectionResult, error) {
		return messages.SelectionResult{}, nil
	})
	p.Close()

	// a request racing shutdown must be refused, not crash the host
	if p.Submit(context.Background(), gesture.Trigger{}, func(messages.SelectionResult, error) {}) {
		t.Fatal("submit on a closed pool must be rejected")
	}
	p.Close() // second Close is a no-op
}

func TestPoolBindFailure(t *testing.T) {
	bindErr := errors.New("no accessibility access")
	p, err := New(func() error { return bindErr }, func() {}, nil)
	if !errors.Is(err, bindErr) {
		t.Fatalf("err = %v, want bind error", err)
	}
	if p != nil {
		t.Fatal("pool must be nil when bind fails")
	}
}

func TestPoolBindsOnWorkerThreadOnce(t *testing.T) {
	binds := 0
	unbound := make(chan struct{})
	p, err := New(func() error { binds++; return nil }, func() { close(unbound) }, func(context.Context, gesture.Trigger) (messages.SelectionResult, error) {
		return messages.SelectionResult{}, nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if binds != 1 {
		t.Fatalf("binds = %d, want 1", binds)
	}
	p.Close()
	select {
	case <-unbound:
	case <-time.After(time.Second):
		t.Fatal("unbind never ran after Close")
	}
}
