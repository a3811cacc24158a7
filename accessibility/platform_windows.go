//go:build windows

package accessibility

import (
	"path/filepath"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"selection-hook/messages"
)

var (
	user32DLL                        = syscall.NewLazyDLL("user32.dll")
	shell32DLL                       = syscall.NewLazyDLL("shell32.dll")
	procGetCursorInfo                = user32DLL.NewProc("GetCursorInfo")
	procLoadCursorW                  = user32DLL.NewProc("LoadCursorW")
	procSHQueryUserNotificationState = shell32DLL.NewProc("SHQueryUserNotificationState")
)

const (
	idcArrow = 32512
	idcIBeam = 32513
	idcHand  = 32649
)

// notification states that suppress detection
const (
	qunsRunningD3DFullScreen = 3
	qunsBusy                 = 4
	qunsPresentationMode     = 5
)

type cursorInfo struct {
	Size      uint32
	Flags     uint32
	Cursor    win.HCURSOR
	ScreenPos win.POINT
}

func loadSystemCursor(id uintptr) win.HCURSOR {
	h, _, _ := procLoadCursorW.Call(0, id)
	return win.HCURSOR(h)
}

// ForegroundWindow returns the currently focused top-level window.
func ForegroundWindow() Window {
	return Window(win.GetForegroundWindow())
}

// WindowUnderMouse returns the window below the pointer, falling back to
// the foreground window. Keys like Alt can blur the foreground window,
// which is why explicit requests resolve the target this way.
func WindowUnderMouse() Window {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return ForegroundWindow()
	}
	if hwnd := win.WindowFromPoint(pt); hwnd != 0 {
		return Window(hwnd)
	}
	return ForegroundWindow()
}

// CursorPos returns the pointer's current screen position.
func CursorPos() (messages.Point, bool) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return messages.Point{}, false
	}
	return messages.Point{X: pt.X, Y: pt.Y}, true
}

// WindowRect returns the window's screen rectangle.
func WindowRect(w Window) (Rect, bool) {
	var r win.RECT
	if !win.GetWindowRect(win.HWND(w), &r) {
		return Rect{}, false
	}
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, true
}

// ProgramName resolves the executable base name owning the window.
func ProgramName(w Window) (string, bool) {
	if w == 0 {
		return "", false
	}
	var pid uint32
	win.GetWindowThreadProcessId(win.HWND(w), &pid)
	if pid == 0 {
		return "", false
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", false
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil || size == 0 {
		return "", false
	}
	return filepath.Base(windows.UTF16ToString(buf[:size])), true
}

// CurrentCursorShape classifies the cursor currently shown.
func CurrentCursorShape() CursorShape {
	ci := cursorInfo{Size: uint32(unsafe.Sizeof(cursorInfo{}))}
	ret, _, _ := procGetCursorInfo.Call(uintptr(unsafe.Pointer(&ci)))
	if ret == 0 || ci.Cursor == 0 {
		return CursorUnknown
	}
	switch ci.Cursor {
	case loadSystemCursor(idcIBeam):
		return CursorBeam
	case loadSystemCursor(idcArrow):
		return CursorArrow
	case loadSystemCursor(idcHand):
		return CursorHand
	}
	return CursorOther
}

var (
	lastStateCheck  time.Time
	lastStateResult = true
)

// SystemAllowsDetection reports whether the desktop is in a state where
// selection detection should run at all. Fullscreen D3D, busy, and
// presentation modes suppress it. The query costs ~0.3ms, so the result
// is cached for 10 seconds; callers all run on the worker goroutine.
func SystemAllowsDetection() bool {
	if time.Since(lastStateCheck) < 10*time.Second {
		return lastStateResult
	}
	lastStateCheck = time.Now()

	var state uint32
	ret, _, _ := procSHQueryUserNotificationState.Call(uintptr(unsafe.Pointer(&state)))
	if ret != 0 { // FAILED(hr): allow by default
		lastStateResult = true
		return lastStateResult
	}
	lastStateResult = state != qunsRunningD3DFullScreen && state != qunsBusy && state != qunsPresentationMode
	return lastStateResult
}

// Trusted reports whether the platform grants accessibility access to
// this process. Windows gates nothing beyond normal desktop access.
func Trusted() bool { return true }
