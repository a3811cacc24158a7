package clipboard

import (
	"context"
	"errors"
	"testing"
)

// fakeBackend simulates the platform clipboard. SendCopy behavior is
// programmable per test: onCopy runs when a copy keystroke arrives.
type fakeBackend struct {
	content string
	seq     uint64

	chordHeld bool
	ctrlHeld  bool
	readFails bool

	onCopy    func(key CopyKey)
	sendCalls []CopyKey
	writes    []string
}

func (f *fakeBackend) Read() (string, bool) {
	if f.readFails {
		return "", false
	}
	return f.content, true
}

func (f *fakeBackend) Write(text string) bool {
	f.set(text)
	f.writes = append(f.writes, text)
	return true
}

func (f *fakeBackend) set(text string) {
	if text != f.content {
		f.content = text
		f.seq++
	}
}

func (f *fakeBackend) Sequence() uint64 { return f.seq }

func (f *fakeBackend) SendCopy(key CopyKey) {
	f.sendCalls = append(f.sendCalls, key)
	if f.onCopy != nil {
		f.onCopy(key)
	}
}

func (f *fakeBackend) CopyChordHeld() bool { return f.chordHeld }
func (f *fakeBackend) CtrlHeld() bool      { return f.ctrlHeld }

func TestFallbackCopyReadsSelectionAndRestores(t *testing.T) {
	b := &fakeBackend{content: "previous content"}
	b.onCopy = func(CopyKey) { b.set("the selection") }
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "the selection" {
		t.Fatalf("text = %q, want the selection", text)
	}
	if b.content != "previous content" {
		t.Errorf("clipboard left as %q, want snapshot restored", b.content)
	}
	// Ctrl+Insert succeeded, Ctrl+C never needed
	if len(b.sendCalls) != 1 || b.sendCalls[0] != CopyKeyInsert {
		t.Errorf("sendCalls = %v, want one Ctrl+Insert", b.sendCalls)
	}
}

func TestFallbackCopyEscalatesToCtrlC(t *testing.T) {
	b := &fakeBackend{content: "old"}
	b.onCopy = func(key CopyKey) {
		if key == CopyKeyCtrlC {
			b.set("copied")
		}
		// Ctrl+Insert ignored by the target application
	}
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "copied" {
		t.Fatalf("text = %q, want copied", text)
	}
	if len(b.sendCalls) != 2 || b.sendCalls[0] != CopyKeyInsert || b.sendCalls[1] != CopyKeyCtrlC {
		t.Errorf("sendCalls = %v, want Insert then Ctrl+C", b.sendCalls)
	}
	if b.content != "old" {
		t.Errorf("clipboard left as %q, want snapshot restored", b.content)
	}
}

func TestFallbackCopyTimeoutLeavesClipboardAlone(t *testing.T) {
	b := &fakeBackend{content: "untouched"}
	// no onCopy: the application never responds to either keystroke
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if !errors.Is(err, ErrClipboardTimeout) {
		t.Fatalf("err = %v, want ErrClipboardTimeout", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
	if len(b.writes) != 0 {
		t.Errorf("writes = %v, nothing was altered so nothing should be restored", b.writes)
	}
}

func TestFallbackCopyUsesUserCopyDirectly(t *testing.T) {
	b := &fakeBackend{content: "user copied this", seq: 5}
	m := NewMediator(b)

	// counter moved since mouse-down: the user's own copy holds the text
	text, err := m.FallbackCopy(context.Background(), false, false, 3)
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "user copied this" {
		t.Fatalf("text = %q, want the user's copy", text)
	}
	if len(b.sendCalls) != 0 {
		t.Errorf("no keystroke should be synthesized over a user copy")
	}
}

func TestFallbackCopyAbortsOnHeldCopyChord(t *testing.T) {
	b := &fakeBackend{content: "x", chordHeld: true}
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if err != nil || text != "" {
		t.Fatalf("got (%q, %v), want silent abort", text, err)
	}
	if len(b.sendCalls) != 0 {
		t.Errorf("no keystroke may be synthesized while the user holds a copy chord")
	}
}

func TestFallbackCopyIdenticalContentSkipsRestore(t *testing.T) {
	b := &fakeBackend{content: "same text"}
	b.onCopy = func(CopyKey) {
		// copying a selection equal to the clipboard: seq changes,
		// content does not
		b.content = "same text"
		b.seq++
	}
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "same text" {
		t.Fatalf("text = %q, want same text", text)
	}
	if len(b.writes) != 0 {
		t.Errorf("identical content must not be rewritten, got writes %v", b.writes)
	}
}

func TestFallbackCopyWhitespaceResultRestores(t *testing.T) {
	b := &fakeBackend{content: "keep me"}
	b.onCopy = func(CopyKey) { b.set("   \n\t") }
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q, want empty for whitespace-only copy", text)
	}
	if b.content != "keep me" {
		t.Errorf("clipboard left as %q, want snapshot restored", b.content)
	}
}

func TestFallbackCopyUnreadableSnapshotSkipsRestore(t *testing.T) {
	// the clipboard holds something non-textual (an image, say): the
	// snapshot read fails, and whatever is there must not be clobbered
	// with an empty restore afterwards
	b := &fakeBackend{readFails: true}
	b.onCopy = func(CopyKey) {
		b.readFails = false
		b.set("copied text")
	}
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, false, b.Sequence())
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "copied text" {
		t.Fatalf("text = %q, want copied text", text)
	}
	if len(b.writes) != 0 {
		t.Errorf("writes = %v, an unreadable snapshot must never be restored", b.writes)
	}
}

func TestFallbackCopyExplicitSkipsUserCopyCheck(t *testing.T) {
	b := &fakeBackend{content: "stale", seq: 9}
	b.onCopy = func(CopyKey) { b.set("fresh selection") }
	m := NewMediator(b)

	// explicit request: even though the counter moved since seqAtDown,
	// the keystroke sequence runs
	text, err := m.FallbackCopy(context.Background(), true, false, 2)
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "fresh selection" {
		t.Fatalf("text = %q, want fresh selection", text)
	}
	if len(b.sendCalls) == 0 {
		t.Errorf("explicit request must synthesize the copy keystroke")
	}
}

func TestFallbackCopyDelayReadSkipsInsert(t *testing.T) {
	b := &fakeBackend{content: "old"}
	b.onCopy = func(key CopyKey) { b.set("slow app copy") }
	m := NewMediator(b)

	text, err := m.FallbackCopy(context.Background(), false, true, b.Sequence())
	if err != nil {
		t.Fatalf("FallbackCopy: %v", err)
	}
	if text != "slow app copy" {
		t.Fatalf("text = %q, want slow app copy", text)
	}
	if len(b.sendCalls) != 1 || b.sendCalls[0] != CopyKeyCtrlC {
		t.Errorf("sendCalls = %v, delay-read apps go straight to Ctrl+C", b.sendCalls)
	}
}

func TestFallbackCopyCancelledContext(t *testing.T) {
	b := &fakeBackend{content: "x"}
	m := NewMediator(b)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// neither keystroke takes effect and the context is gone, so the
	// poll gives up without burning the full timeout
	if _, err := m.FallbackCopy(ctx, false, false, b.Sequence()); !errors.Is(err, ErrClipboardTimeout) {
		t.Fatalf("err = %v, want ErrClipboardTimeout", err)
	}
}
