// Package gesture classifies raw mouse activity into the gestures that
// plausibly mark a text selection: a drag, a double-click, or a
// shift-click. Everything is evaluated on mouse-up; at most one gesture
// fires per mouse-up, tested in the fixed order Drag, DoubleClick,
// ShiftClick.
package gesture

import (
	"math"
	"sync/atomic"
	"time"

	"selection-hook/accessibility"
	"selection-hook/messages"
)

const (
	// MinDragDistance is how far the pointer must travel between
	// mouse-down and mouse-up to count as a drag.
	MinDragDistance = 8
	// MaxDragTime caps how long a drag may take.
	MaxDragTime = 8 * time.Second
	// DoubleClickMaxDistance bounds pointer travel within and between
	// the two clicks of a double-click.
	DoubleClickMaxDistance = 3
	// DefaultDoubleClickTime is used when the host does not configure
	// the platform's double-click interval.
	DefaultDoubleClickTime = 500 * time.Millisecond

	// windows dragged by their title bar move with the pointer; a text
	// drag leaves the window rectangle in place within this tolerance
	windowMoveTolerance = 2
)

// Kind is the classified gesture, or KindExplicit for retrievals the
// host requested directly.
type Kind int

const (
	KindNone Kind = iota
	KindDrag
	KindDoubleClick
	KindShiftClick
	KindExplicit
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindDoubleClick:
		return "double-click"
	case KindShiftClick:
		return "shift-click"
	case KindExplicit:
		return "explicit"
	}
	return "none"
}

// Trigger is handed to the selection retriever when a gesture fires.
type Trigger struct {
	Kind Kind

	// pointer positions bracketing the gesture; equal for double-click
	MouseStart messages.Point
	MouseEnd   messages.Point

	CursorAtDown accessibility.CursorShape
	CursorAtUp   accessibility.CursorShape

	// clipboard change counter captured at mouse-down, used by the
	// fallback to tell a user copy from a synthesized one
	SeqAtDown uint64
}

// Platform supplies the probes the classifier snapshots at mouse
// transitions. Tests substitute fakes.
type Platform struct {
	WindowUnderMouse  func() accessibility.Window
	WindowRect        func(accessibility.Window) (accessibility.Rect, bool)
	CursorShape       func() accessibility.CursorShape
	ClipboardSequence func() uint64
}

// SystemPlatform returns probes backed by the real OS.
func SystemPlatform(seq func() uint64) Platform {
	return Platform{
		WindowUnderMouse:  accessibility.WindowUnderMouse,
		WindowRect:        accessibility.WindowRect,
		CursorShape:       accessibility.CurrentCursorShape,
		ClipboardSequence: seq,
	}
}

// Classifier keeps the short rolling state needed to classify mouse-ups.
// All On* methods must be called from the single event-delivery
// goroutine; only SetPassive and SetDoubleClickTime are safe elsewhere.
type Classifier struct {
	platform Platform
	passive  atomic.Bool

	doubleClickTime atomic.Int64 // nanoseconds

	lastDownPos  messages.Point
	lastDownTime time.Time
	lastUpPos    messages.Point
	prevUpPos    messages.Point
	lastUpTime   time.Time

	lastValidClick bool

	downWindow   accessibility.Window
	downRect     accessibility.Rect
	downRectOK   bool
	cursorAtDown accessibility.CursorShape
	seqAtDown    uint64

	shift bool
	ctrl  bool
	alt   bool
}

func NewClassifier(platform Platform) *Classifier {
	c := &Classifier{platform: platform}
	c.doubleClickTime.Store(int64(DefaultDoubleClickTime))
	return c
}

// SetPassive suppresses all gesture-based triggering; selections must
// then be requested explicitly.
func (c *Classifier) SetPassive(passive bool) { c.passive.Store(passive) }

// SetDoubleClickTime overrides the double-click interval.
func (c *Classifier) SetDoubleClickTime(d time.Duration) {
	if d > 0 {
		c.doubleClickTime.Store(int64(d))
	}
}

func distance(a, b messages.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// plausibleTextCursor reports whether the shape is consistent with text
// under the pointer. Beam is certain; arrow and hand cover text surfaces
// like browser pages; an unknown shape cannot rule text out.
func plausibleTextCursor(s accessibility.CursorShape) bool {
	return s == accessibility.CursorBeam || s == accessibility.CursorArrow ||
		s == accessibility.CursorHand || s == accessibility.CursorUnknown
}

// OnMouseDown snapshots the state a later mouse-up is judged against.
func (c *Classifier) OnMouseDown(pos messages.Point, now time.Time) {
	c.lastDownPos = pos
	c.lastDownTime = now
	c.cursorAtDown = c.platform.CursorShape()
	c.seqAtDown = c.platform.ClipboardSequence()

	c.downWindow = c.platform.WindowUnderMouse()
	c.downRectOK = false
	if c.downWindow != 0 {
		c.downRect, c.downRectOK = c.platform.WindowRect(c.downWindow)
	}
}

// OnKey tracks modifier state from raw key transitions (Windows virtual
// key codes, which the input monitor reports on every platform it
// supports).
func (c *Classifier) OnKey(rawcode uint16, down bool) {
	// modifier state is read via shiftOnly at mouse-up
	switch rawcode {
	case 16, 160, 161: // Shift
		c.shift = down
	case 17, 162, 163: // Ctrl
		c.ctrl = down
	case 18, 164, 165: // Alt
		c.alt = down
	}
}

// OnMouseUp classifies the completed press. The returned trigger is
// valid only when the second result is true. Rolling state advances even
// in passive mode so a later passive-off sees consistent history.
func (c *Classifier) OnMouseUp(pos messages.Point, now time.Time) (Trigger, bool) {
	trig := Trigger{
		CursorAtDown: c.cursorAtDown,
		CursorAtUp:   c.platform.CursorShape(),
		SeqAtDown:    c.seqAtDown,
	}
	fired := false

	doubleClickTime := time.Duration(c.doubleClickTime.Load())
	elapsed := now.Sub(c.lastDownTime)
	dist := distance(pos, c.lastDownPos)
	currentValidClick := elapsed <= doubleClickTime

	if !c.passive.Load() {
		switch {
		case elapsed > MaxDragTime:
			// held too long, not a selection gesture

		case dist >= MinDragDistance:
			if c.isTextDrag(pos, trig) {
				trig.Kind = KindDrag
				trig.MouseStart = c.lastDownPos
				trig.MouseEnd = pos
				fired = true
			}

		case c.lastValidClick && currentValidClick && dist <= DoubleClickMaxDistance:
			if distance(pos, c.lastUpPos) <= DoubleClickMaxDistance &&
				c.lastDownTime.Sub(c.lastUpTime) <= doubleClickTime {
				trig.Kind = KindDoubleClick
				trig.MouseStart = pos
				trig.MouseEnd = pos
				fired = true
			}
		}

		if !fired && c.shiftOnly() {
			trig.Kind = KindShiftClick
			// bracket from the previous mouse-up to this one: the shift
			// click extends a selection anchored at the earlier click
			trig.MouseStart = c.lastUpPos
			trig.MouseEnd = pos
			fired = true
		}

		c.lastValidClick = currentValidClick
	}

	c.prevUpPos = c.lastUpPos
	c.lastUpPos = pos
	c.lastUpTime = now

	return trig, fired
}

// isTextDrag separates dragging over text from dragging the window
// itself: the window under the pointer must be the one the press started
// on and must not have moved, and the cursor must have looked like text
// at one end of the drag.
func (c *Classifier) isTextDrag(pos messages.Point, trig Trigger) bool {
	if !plausibleTextCursor(trig.CursorAtDown) && !plausibleTextCursor(trig.CursorAtUp) {
		return false
	}
	w := c.platform.WindowUnderMouse()
	if w == 0 || w != c.downWindow {
		return false
	}
	if c.downRectOK {
		if rect, ok := c.platform.WindowRect(w); ok && rect.Moved(c.downRect, windowMoveTolerance) {
			return false
		}
	}
	return true
}

func (c *Classifier) shiftOnly() bool { return c.shift && !c.ctrl && !c.alt }
