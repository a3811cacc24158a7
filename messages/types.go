package messages

// Message is the base interface for all events delivered to the sink callback.
type Message interface {
	Type() string
}

// MessageType constants for type identification
const (
	TypeSelection = "text-selection"
	TypeMouse     = "mouse-event"
	TypeKeyboard  = "keyboard-event"
	TypeStatus    = "status"
	TypeError     = "error"
)

// Point is a screen-space coordinate.
type Point struct {
	X int32
	Y int32
}

// Method identifies which extraction strategy produced a selection result.
type Method int

const (
	MethodNone Method = iota
	MethodAccessibilityTree
	MethodFocusedControl
	MethodLegacyAccessible
	MethodClipboard
)

func (m Method) String() string {
	switch m {
	case MethodAccessibilityTree:
		return "accessibility-tree"
	case MethodFocusedControl:
		return "focused-control"
	case MethodLegacyAccessible:
		return "legacy-accessible"
	case MethodClipboard:
		return "clipboard"
	}
	return "none"
}

// PositionLevel is an ordered indicator of how much selection geometry is known.
type PositionLevel int

const (
	PosNone        PositionLevel = iota // no position information available
	PosMouseSingle                      // only one mouse cursor position is known
	PosMouseDual                        // mouse start and end positions are known
	PosFull                             // first line start and last line end coordinates are known
	PosDetailed                         // all corner points are known exactly
)

// MouseButton identifies the button of a raw mouse event. Wheel events reuse
// 0/1 as vertical/horizontal and report direction in MouseEvent.Flag.
type MouseButton int

const (
	ButtonNone    MouseButton = -1
	ButtonLeft    MouseButton = 0
	ButtonMiddle  MouseButton = 1
	ButtonRight   MouseButton = 2
	ButtonBack    MouseButton = 3
	ButtonForward MouseButton = 4

	WheelVertical   MouseButton = 0
	WheelHorizontal MouseButton = 1
)

// SelectionResult describes one detected text selection. It is transient:
// created per retrieval attempt and never persisted.
//
// StartTop/StartBottom are the left top/bottom corners of the selection's
// first line, EndTop/EndBottom the right corners of its last line, all in
// screen coordinates. Which of these fields are meaningful is indicated by
// PosLevel.
type SelectionResult struct {
	Text        string
	ProgramName string

	StartTop    Point
	StartBottom Point
	EndTop      Point
	EndBottom   Point

	MouseStart Point
	MouseEnd   Point

	Method   Method
	PosLevel PositionLevel
}

// SelectionEvent - delivered when a selection was detected or retrieved.
type SelectionEvent struct {
	Result SelectionResult
}

func (m SelectionEvent) Type() string { return TypeSelection }

// MouseEvent - raw mouse event forwarded from the input monitor.
// Action is one of "mouse-down", "mouse-up", "mouse-move", "mouse-wheel".
// Flag carries the wheel direction (+1/-1) for wheel events.
type MouseEvent struct {
	Action string
	Pos    Point
	Button MouseButton
	Flag   int32
}

func (m MouseEvent) Type() string { return TypeMouse }

// KeyboardEvent - raw keyboard event forwarded from the input monitor.
// Key is the MDN-style key name when known, Rawcode the platform key code.
type KeyboardEvent struct {
	Action   string // "key-down" or "key-up"
	Key      string
	Rawcode  uint16
	Modifier bool
}

func (m KeyboardEvent) Type() string { return TypeKeyboard }

// StatusEvent - engine lifecycle transition.
type StatusEvent struct {
	State string // "running" or "stopped"
}

func (m StatusEvent) Type() string { return TypeStatus }

// ErrorEvent - non-fatal diagnostic surfaced to the consumer.
type ErrorEvent struct {
	Err error
}

func (m ErrorEvent) Type() string { return TypeError }
