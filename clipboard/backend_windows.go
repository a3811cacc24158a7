//go:build windows

package clipboard

import (
	"syscall"
	"unsafe"
)

var (
	user32DLL                      = syscall.NewLazyDLL("user32.dll")
	procGetClipboardSequenceNumber = user32DLL.NewProc("GetClipboardSequenceNumber")
	procGetAsyncKeyState           = user32DLL.NewProc("GetAsyncKeyState")
	procSendInput                  = user32DLL.NewProc("SendInput")
)

const (
	vkShift    = 0x10
	vkControl  = 0x11
	vkMenu     = 0x12 // Alt
	vkInsert   = 0x2D
	vkC        = 0x43
	vkV        = 0x56
	vkX        = 0x58
	vkRControl = 0xA3

	keyEventFKeyUp = 0x0002
	inputKeyboard  = 1
)

type keyInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// input matches the Win32 INPUT struct on 64-bit; the trailing pad covers
// the larger MOUSEINPUT arm of the union.
type input struct {
	Type uint32
	_    uint32
	Ki   keyInput
	_    [8]byte
}

func keyHeld(vk int) bool {
	ret, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return ret&0x8000 != 0
}

// windowsBackend drives the real clipboard and keyboard.
type windowsBackend struct{}

// NewSystemBackend returns the platform clipboard backend.
func NewSystemBackend() Backend { return windowsBackend{} }

func (windowsBackend) Read() (string, bool) { return Read() }

func (windowsBackend) Write(text string) bool { return Write(text) == nil }

func (windowsBackend) Sequence() uint64 {
	ret, _, _ := procGetClipboardSequenceNumber.Call()
	return uint64(uint32(ret))
}

func (windowsBackend) CopyChordHeld() bool {
	return keyHeld(vkControl) || keyHeld(vkC) || keyHeld(vkX) || keyHeld(vkV)
}

func (windowsBackend) CtrlHeld() bool { return keyHeld(vkControl) }

// SendCopy synthesizes the copy keystroke. Held Alt/Shift are released
// first so the target sees a clean chord; a Ctrl already held by the
// user is reused rather than pressed again.
func (windowsBackend) SendCopy(key CopyKey) {
	ctrlHeld := keyHeld(vkControl)
	if ctrlHeld && keyHeld(vkC) {
		// user is copying right now, stay out of the way
		return
	}

	vk := uint16(vkInsert)
	if key == CopyKeyCtrlC {
		vk = vkC
	}

	var inputs []input
	press := func(code uint16, flags uint32) {
		inputs = append(inputs, input{
			Type: inputKeyboard,
			Ki:   keyInput{Vk: code, Flags: flags},
		})
	}

	if keyHeld(vkMenu) {
		press(vkMenu, keyEventFKeyUp)
	}
	if keyHeld(vkShift) {
		press(vkShift, keyEventFKeyUp)
	}
	if !ctrlHeld {
		press(vkRControl, 0)
	}
	press(vk, 0)
	press(vk, keyEventFKeyUp)
	if !ctrlHeld {
		press(vkRControl, keyEventFKeyUp)
	}

	procSendInput.Call(uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])), unsafe.Sizeof(inputs[0]))
}
