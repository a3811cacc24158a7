package bridge

import (
	"testing"
	"time"

	"selection-hook/messages"
)

func TestSelectionsNeverDropped(t *testing.T) {
	b := New()
	defer b.Close()

	go func() {
		for i := 0; i < 10; i++ {
			b.PublishSelection(messages.SelectionEvent{Result: messages.SelectionResult{Text: "s"}})
		}
	}()

	for i := 0; i < 10; i++ {
		select {
		case <-b.Selections():
		case <-time.After(time.Second):
			t.Fatalf("selection %d never arrived", i)
		}
	}
}

func TestPublishSelectionUnblocksOnClose(t *testing.T) {
	b := New()
	// fill the slot so the next publish blocks
	b.PublishSelection(messages.SelectionEvent{})

	done := make(chan struct{})
	go func() {
		b.PublishSelection(messages.SelectionEvent{})
		close(done)
	}()
	b.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher still blocked after Close")
	}
}

func TestRawEventsShedWhenFull(t *testing.T) {
	b := New()
	defer b.Close()

	for i := 0; i < mouseQueueSize+50; i++ {
		b.PublishMouse(messages.MouseEvent{Action: "mouse-move"})
	}
	mouse, _ := b.Drops()
	if mouse != 50 {
		t.Errorf("mouse drops = %d, want 50", mouse)
	}
	if got := len(b.mouseCh); got != mouseQueueSize {
		t.Errorf("queued = %d, want full queue %d", got, mouseQueueSize)
	}
}

func TestKeyboardQueueIndependent(t *testing.T) {
	b := New()
	defer b.Close()

	for i := 0; i < keyQueueSize; i++ {
		b.PublishKey(messages.KeyboardEvent{Action: "key-down"})
	}
	b.PublishMouse(messages.MouseEvent{Action: "mouse-down"})

	_, key := b.Drops()
	if key != 0 {
		t.Errorf("key drops = %d, want 0 at exactly capacity", key)
	}
	select {
	case ev := <-b.Mouse():
		if ev.Action != "mouse-down" {
			t.Errorf("Action = %q", ev.Action)
		}
	default:
		t.Error("mouse event missing despite full keyboard queue")
	}
}

func TestAuxDeliversStatus(t *testing.T) {
	b := New()
	defer b.Close()

	b.PublishAux(messages.StatusEvent{State: "running"})
	select {
	case ev := <-b.Aux():
		st, ok := ev.(messages.StatusEvent)
		if !ok || st.State != "running" {
			t.Errorf("got %#v", ev)
		}
	default:
		t.Fatal("status event missing")
	}
}
