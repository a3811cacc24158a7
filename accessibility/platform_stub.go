//go:build !windows

package accessibility

import "selection-hook/messages"

// ForegroundWindow is a stub for non-Windows platforms.
func ForegroundWindow() Window { return 0 }

// WindowUnderMouse is a stub for non-Windows platforms.
func WindowUnderMouse() Window { return 0 }

// WindowRect is a stub for non-Windows platforms.
func WindowRect(Window) (Rect, bool) { return Rect{}, false }

// ProgramName is a stub for non-Windows platforms.
func ProgramName(Window) (string, bool) { return "", false }

// CursorPos is a stub for non-Windows platforms.
func CursorPos() (messages.Point, bool) { return messages.Point{}, false }

// CurrentCursorShape is a stub for non-Windows platforms.
func CurrentCursorShape() CursorShape { return CursorUnknown }

// SystemAllowsDetection always passes where no desktop state query exists.
func SystemAllowsDetection() bool { return true }

// Trusted is a stub for non-Windows platforms.
func Trusted() bool { return true }
