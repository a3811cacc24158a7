// Package retriever turns one classified gesture (or one explicit
// request) into at most one selection result, by walking the extraction
// strategies in order: accessibility tree, focused control, legacy
// accessible interface, then the guarded clipboard fallback.
package retriever

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"selection-hook/accessibility"
	"selection-hook/clipboard"
	"selection-hook/display"
	"selection-hook/filter"
	"selection-hook/gesture"
	"selection-hook/messages"
)

// ErrConcurrentRequest means a retrieval was already in flight. Gesture
// triggers are dropped silently on this; explicit requests surface it.
var ErrConcurrentRequest = errors.New("selection retrieval already in progress")

// Platform supplies the window and desktop probes a retrieval needs.
// Tests substitute fakes; SystemPlatform wires the real OS.
type Platform struct {
	ForegroundWindow      func() accessibility.Window
	WindowUnderMouse      func() accessibility.Window
	ProgramName           func(accessibility.Window) (string, bool)
	CursorPos             func() (messages.Point, bool)
	SystemAllowsDetection func() bool
}

func SystemPlatform() Platform {
	return Platform{
		ForegroundWindow:      accessibility.ForegroundWindow,
		WindowUnderMouse:      accessibility.WindowUnderMouse,
		ProgramName:           accessibility.ProgramName,
		CursorPos:             accessibility.CursorPos,
		SystemAllowsDetection: accessibility.SystemAllowsDetection,
	}
}

// Retriever executes retrieval attempts one at a time. Retrieve must be
// called from the goroutine the provider was bound on.
type Retriever struct {
	provider accessibility.Provider
	mediator *clipboard.Mediator
	filters  *filter.Engine
	platform Platform

	inFlight          atomic.Bool
	clipboardFallback atomic.Bool
	clampToDisplay    atomic.Bool
}

func New(provider accessibility.Provider, mediator *clipboard.Mediator, filters *filter.Engine, platform Platform) *Retriever {
	r := &Retriever{
		provider: provider,
		mediator: mediator,
		filters:  filters,
		platform: platform,
	}
	r.clampToDisplay.Store(true)
	return r
}

// SetClipboardFallback switches the clipboard strategy on or off as a
// whole. Off by default: it is the one strategy with side effects.
func (r *Retriever) SetClipboardFallback(enabled bool) {
	r.clipboardFallback.Store(enabled)
}

// SetClampToDisplay controls pinning of reported coordinates to the
// virtual screen.
func (r *Retriever) SetClampToDisplay(enabled bool) {
	r.clampToDisplay.Store(enabled)
}

// Retrieve runs one attempt for the trigger. A zero result with a nil
// error means nothing selection-worthy was found and no event should be
// published.
func (r *Retriever) Retrieve(ctx context.Context, trig gesture.Trigger) (messages.SelectionResult, error) {
	var res messages.SelectionResult

	if !r.inFlight.CompareAndSwap(false, true) {
		return res, ErrConcurrentRequest
	}
	defer r.inFlight.Store(false)

	if !r.platform.SystemAllowsDetection() {
		return res, nil
	}

	w := r.targetWindow()
	if w == 0 {
		return res, nil
	}

	program, known := r.platform.ProgramName(w)
	if !known && r.filters.GlobalMode() == filter.IncludeList {
		// can't prove membership, fail closed
		return res, nil
	}
	if known && !r.filters.GlobalAllows(program) {
		return res, nil
	}

	if err := r.extract(ctx, w, trig, program, &res); err != nil {
		return messages.SelectionResult{}, err
	}

	if strings.TrimSpace(res.Text) == "" {
		return messages.SelectionResult{}, nil
	}

	res.ProgramName = program
	r.fillPositions(trig, &res)
	if r.clampToDisplay.Load() {
		display.ClampAll(&res)
	}
	return res, nil
}

// extract walks the strategy chain, filling res on the first success.
func (r *Retriever) extract(ctx context.Context, w accessibility.Window, trig gesture.Trigger, program string, res *messages.SelectionResult) error {
	role, ok := r.provider.TreeSelection(w, res)
	if ok && strings.TrimSpace(res.Text) != "" {
		res.Method = messages.MethodAccessibilityTree
		return nil
	}

	*res = messages.SelectionResult{}
	if r.provider.FocusedControlSelection(w, res) && strings.TrimSpace(res.Text) != "" {
		res.Method = messages.MethodFocusedControl
		return nil
	}

	*res = messages.SelectionResult{}
	if r.provider.LegacySelection(w, res) && strings.TrimSpace(res.Text) != "" {
		res.Method = messages.MethodLegacyAccessible
		return nil
	}

	*res = messages.SelectionResult{}
	if !r.clipboardAllowed(trig, program, role) {
		return nil
	}
	text, err := r.mediator.FallbackCopy(ctx, trig.Kind == gesture.KindExplicit,
		r.filters.WantsDelayRead(program), trig.SeqAtDown)
	if err != nil {
		if errors.Is(err, clipboard.ErrClipboardTimeout) {
			log.Printf("Clipboard fallback: %v (program=%s)", err, program)
			return nil
		}
		return err
	}
	if text != "" {
		res.Text = text
		res.Method = messages.MethodClipboard
	}
	return nil
}

// clipboardAllowed gates the one strategy that synthesizes input. The
// cursor heuristic keeps the keystroke away from surfaces that plainly
// hold no text: a caret cursor always passes, arrow and hand pass only
// over roles known to host text (browser pages, editors), anything else
// needs the per-app exception list.
func (r *Retriever) clipboardAllowed(trig gesture.Trigger, program string, role accessibility.Role) bool {
	if !r.clipboardFallback.Load() {
		return false
	}
	if !r.filters.ClipboardAllows(program) {
		return false
	}
	if trig.Kind == gesture.KindExplicit {
		return true
	}
	if r.filters.SkipsCursorDetect(program) {
		return true
	}
	return cursorSuggestsText(trig.CursorAtUp, role) || cursorSuggestsText(trig.CursorAtDown, role)
}

func cursorSuggestsText(shape accessibility.CursorShape, role accessibility.Role) bool {
	switch shape {
	case accessibility.CursorBeam:
		return true
	case accessibility.CursorArrow, accessibility.CursorHand:
		return role.TextSurface()
	}
	return false
}

// targetWindow picks which window a retrieval addresses. Gestures target
// the window under the pointer; explicit requests do too, because
// foreground focus may sit on the caller's own window.
func (r *Retriever) targetWindow() accessibility.Window {
	if w := r.platform.WindowUnderMouse(); w != 0 {
		return w
	}
	return r.platform.ForegroundWindow()
}

// fillPositions stamps the mouse bracket and downgrades the position
// level to whatever is actually known when the strategy produced no
// range geometry.
func (r *Retriever) fillPositions(trig gesture.Trigger, res *messages.SelectionResult) {
	switch trig.Kind {
	case gesture.KindDrag, gesture.KindShiftClick:
		res.MouseStart = trig.MouseStart
		res.MouseEnd = trig.MouseEnd
		if res.PosLevel < messages.PosFull {
			res.PosLevel = messages.PosMouseDual
		}
	case gesture.KindDoubleClick:
		res.MouseStart = trig.MouseStart
		res.MouseEnd = trig.MouseEnd
		if res.PosLevel < messages.PosFull {
			res.PosLevel = messages.PosMouseSingle
		}
	case gesture.KindExplicit:
		if pos, ok := r.platform.CursorPos(); ok {
			res.MouseStart = pos
			res.MouseEnd = pos
			if res.PosLevel < messages.PosFull {
				res.PosLevel = messages.PosMouseSingle
			}
		}
	}
}
