package clipboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// ErrClipboardTimeout means no clipboard change was observed within the
// bound after a synthesized copy. The clipboard was never altered, so
// nothing needed restoring.
var ErrClipboardTimeout = errors.New("no clipboard change within timeout")

// CopyKey selects which copy keystroke to synthesize.
type CopyKey int

const (
	// CopyKeyInsert is the secondary, less invasive combination
	// (Ctrl+Insert on Windows): it tends to leave application clipboard
	// history and undo state alone, so it is tried first.
	CopyKeyInsert CopyKey = iota
	CopyKeyCtrlC
)

// Backend is the platform surface the mediator drives. Tests substitute a
// fake; production uses the system backend for the current OS.
type Backend interface {
	Read() (string, bool)
	Write(text string) bool
	// Sequence is the platform clipboard change counter. It changes
	// whenever clipboard content changes; absolute values are opaque.
	Sequence() uint64
	SendCopy(key CopyKey)
	// CopyChordHeld reports whether a copy/cut/paste chord key (Ctrl,
	// C, X, V) is physically held right now.
	CopyChordHeld() bool
	CtrlHeld() bool
}

const (
	seqPollInterval = 5 * time.Millisecond
	insertPolls     = 20 // Ctrl+Insert wait, ~100ms
	ctrlCPolls      = 36 // Ctrl+C wait, ~180ms
	settleDelay     = 10 * time.Millisecond
	// apps in the delay-read list rewrite the clipboard several times
	// after one copy and need this long to settle
	delayReadExtra = 135 * time.Millisecond
)

// Mediator implements the clipboard-fallback protocol: snapshot, copy
// keystroke, bounded poll of the change counter, read, restore. Whatever
// goes wrong mid-sequence, the pre-attempt clipboard content is back in
// place by the time a call returns without text.
type Mediator struct {
	backend Backend
}

func NewMediator(backend Backend) *Mediator {
	return &Mediator{backend: backend}
}

// FallbackCopy performs one guarded copy attempt. explicit marks a
// retrieval the user asked for directly (no gesture involved); seqAtDown
// is the change counter captured at mouse-down for gesture triggers.
// delayRead applies the per-app extra settle delay.
//
// The returned text is never empty or whitespace-only; ("", nil) means
// the attempt produced nothing and the clipboard is untouched.
func (m *Mediator) FallbackCopy(ctx context.Context, explicit, delayRead bool, seqAtDown uint64) (string, error) {
	if !explicit {
		// The user may be mid-copy themselves. If the counter already
		// moved since mouse-down, their copy holds the selection and we
		// can read it without synthesizing anything.
		if m.backend.Sequence() != seqAtDown {
			if text, ok := m.backend.Read(); ok && strings.TrimSpace(text) != "" {
				return text, nil
			}
			return "", nil
		}
		// A held copy chord means a genuine user copy is in progress
		// and the fallback must not interfere.
		if m.backend.CopyChordHeld() {
			return "", nil
		}
	}

	snapshot, snapshotOK := m.backend.Read()

	if !delayRead {
		if !explicit && m.backend.CtrlHeld() {
			return "", nil
		}
		seq := m.backend.Sequence()
		m.backend.SendCopy(CopyKeyInsert)
		if pollUntil(ctx, seqPollInterval, insertPolls, func() bool { return m.backend.Sequence() != seq }) {
			time.Sleep(settleDelay)
			return m.capture(snapshot, snapshotOK)
		}
	}

	if !explicit && m.backend.CtrlHeld() {
		return "", nil
	}
	seq := m.backend.Sequence()
	m.backend.SendCopy(CopyKeyCtrlC)
	if !pollUntil(ctx, seqPollInterval, ctrlCPolls, func() bool { return m.backend.Sequence() != seq }) {
		// clipboard was never altered, nothing to restore
		return "", ErrClipboardTimeout
	}

	if delayRead {
		time.Sleep(delayReadExtra)
	}
	time.Sleep(settleDelay)

	if !explicit && m.backend.CtrlHeld() {
		m.restore(snapshot, snapshotOK)
		return "", nil
	}
	return m.capture(snapshot, snapshotOK)
}

// capture reads the post-copy content and puts the snapshot back unless
// it is textually identical, which would make the write redundant.
func (m *Mediator) capture(snapshot string, snapshotOK bool) (string, error) {
	text, ok := m.backend.Read()
	if !ok || strings.TrimSpace(text) == "" {
		m.restore(snapshot, snapshotOK)
		return "", nil
	}
	if text != snapshot {
		m.restore(snapshot, snapshotOK)
	}
	return text, nil
}

// restore puts the pre-attempt content back. A failed snapshot read
// means the clipboard held something that was never captured (an image,
// say); writing the empty string over it would destroy it, so the
// restore is skipped.
func (m *Mediator) restore(snapshot string, snapshotOK bool) {
	if !snapshotOK {
		return
	}
	if !m.backend.Write(snapshot) {
		log.Printf("clipboard: failed to restore snapshot (%d chars)", len(snapshot))
	}
}

// pollUntil evaluates pred at a fixed interval up to attempts times,
// returning true as soon as it holds. The first check is immediate, so a
// predicate that already holds costs no sleep.
func pollUntil(ctx context.Context, interval time.Duration, attempts int, pred func() bool) bool {
	for i := 0; i < attempts; i++ {
		if pred() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
	return false
}
