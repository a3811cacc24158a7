package monitor

import "fmt"

// KeyName maps a Windows virtual-key code to its MDN KeyboardEvent.key
// name, and reports whether the key is a modifier. Unmapped codes yield
// "Unknown(<code>)".
func KeyName(rawcode uint16) (name string, modifier bool) {
	switch rawcode {
	case 0x10, 0xA0, 0xA1:
		return "Shift", true
	case 0x11, 0xA2, 0xA3:
		return "Control", true
	case 0x12, 0xA4, 0xA5:
		return "Alt", true
	case 0x5B, 0x5C:
		return "Meta", true
	}
	if name, ok := keyNames[rawcode]; ok {
		return name, false
	}
	switch {
	case rawcode >= 0x30 && rawcode <= 0x39: // digits
		return string(rune('0' + rawcode - 0x30)), false
	case rawcode >= 0x41 && rawcode <= 0x5A: // letters, unshifted form
		return string(rune('a' + rawcode - 0x41)), false
	case rawcode >= 0x60 && rawcode <= 0x69: // numpad digits
		return string(rune('0' + rawcode - 0x60)), false
	case rawcode >= 0x70 && rawcode <= 0x87: // F1..F24
		return fmt.Sprintf("F%d", rawcode-0x70+1), false
	}
	return fmt.Sprintf("Unknown(%d)", rawcode), false
}

var keyNames = map[uint16]string{
	0x08: "Backspace",
	0x09: "Tab",
	0x0C: "Clear",
	0x0D: "Enter",
	0x13: "Pause",
	0x14: "CapsLock",
	0x1B: "Escape",
	0x20: " ",
	0x21: "PageUp",
	0x22: "PageDown",
	0x23: "End",
	0x24: "Home",
	0x25: "ArrowLeft",
	0x26: "ArrowUp",
	0x27: "ArrowRight",
	0x28: "ArrowDown",
	0x29: "Select",
	0x2B: "Execute",
	0x2C: "PrintScreen",
	0x2D: "Insert",
	0x2E: "Delete",
	0x2F: "Help",
	0x5D: "ContextMenu",
	0x5F: "Standby",
	0x6A: "*",
	0x6B: "+",
	0x6C: "Separator",
	0x6D: "-",
	0x6E: ".",
	0x6F: "/",
	0x90: "NumLock",
	0x91: "ScrollLock",
	0xA6: "BrowserBack",
	0xA7: "BrowserForward",
	0xA8: "BrowserRefresh",
	0xA9: "BrowserStop",
	0xAA: "BrowserSearch",
	0xAB: "BrowserFavorites",
	0xAC: "BrowserHome",
	0xAD: "AudioVolumeMute",
	0xAE: "AudioVolumeDown",
	0xAF: "AudioVolumeUp",
	0xB0: "MediaTrackNext",
	0xB1: "MediaTrackPrevious",
	0xB2: "MediaStop",
	0xB3: "MediaPlayPause",
	0xB4: "LaunchMail",
	0xB5: "LaunchMediaPlayer",
	0xBA: ";",
	0xBB: "=",
	0xBC: ",",
	0xBD: "-",
	0xBE: ".",
	0xBF: "/",
	0xC0: "`",
	0xDB: "[",
	0xDC: "\\",
	0xDD: "]",
	0xDE: "'",
}
