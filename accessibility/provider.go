// Package accessibility exposes the platform capability used to read a
// focused UI element's selected text and its on-screen geometry.
package accessibility

import (
	"errors"

	"selection-hook/messages"
)

var (
	// ErrPermissionDenied means accessibility access is not granted.
	// Fatal to any retrieval until granted, non-fatal to the process.
	ErrPermissionDenied = errors.New("accessibility access not granted")
	// ErrStrategyUnavailable means the target application does not
	// implement the queried interface. Expected, causes fallthrough.
	ErrStrategyUnavailable = errors.New("strategy unavailable for target application")
)

// Window is an opaque native window handle.
type Window uintptr

// Rect is a native window rectangle in screen coordinates.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Moved reports whether the rectangle differs from prev by more than
// tolerance pixels on any edge.
func (r Rect) Moved(prev Rect, tolerance int32) bool {
	abs := func(v int32) int32 {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(r.Left-prev.Left) > tolerance ||
		abs(r.Top-prev.Top) > tolerance ||
		abs(r.Right-prev.Right) > tolerance ||
		abs(r.Bottom-prev.Bottom) > tolerance
}

// CursorShape classifies the pointer's current cursor.
type CursorShape int

const (
	CursorUnknown CursorShape = iota
	CursorBeam                // text caret
	CursorArrow
	CursorHand
	CursorOther // application-defined shape
)

// Role classifies the focused element's control type, used by the
// clipboard-fallback heuristic for applications whose text surfaces use
// arrow or hand cursors (browser pages, devtools).
type Role int

const (
	RoleUnknown Role = iota
	RoleWindow
	RoleGroup
	RoleDocument
	RoleText
	RoleOther
)

// TextSurface reports whether the role is one of the allow-listed set
// known to hold text behind a non-caret cursor.
func (r Role) TextSurface() bool {
	return r == RoleGroup || r == RoleDocument || r == RoleText
}

// Provider is the ordered set of extraction capabilities one platform
// offers. Implementations are selected at build time; every method is
// best-effort and a false return means fallthrough to the next strategy.
type Provider interface {
	// Bind prepares the provider for use on the calling goroutine. The
	// caller must keep invoking the query methods from that goroutine
	// until Unbind (COM apartment affinity on Windows).
	Bind() error
	Unbind()

	// TreeSelection queries the focused element's selected text through
	// the modern accessibility tree, filling out.Text and, when range
	// geometry is available, the corner points with PosLevel set to
	// PosFull. The focused element's role is returned for the
	// clipboard-fallback heuristic.
	TreeSelection(w Window, out *messages.SelectionResult) (Role, bool)

	// FocusedControlSelection queries the focused control's selection
	// range directly. Geometry, when present, is the control's bounding
	// rectangle: coarse, so PosLevel stays PosNone.
	FocusedControlSelection(w Window, out *messages.SelectionResult) bool

	// LegacySelection queries the compatibility accessibility interface
	// for applications that never implemented the modern one.
	LegacySelection(w Window, out *messages.SelectionResult) bool
}

// New returns the provider for the current platform.
func New() Provider { return newPlatformProvider() }
