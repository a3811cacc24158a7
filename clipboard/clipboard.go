// Package clipboard mediates clipboard access: plain read/write for the
// host application, and the guarded fallback-copy protocol the selection
// retriever uses as its last-resort extraction strategy.
package clipboard

import (
	"golang.design/x/clipboard"
)

func Init() error {
	return clipboard.Init()
}

// Read returns the clipboard's current text content.
func Read() (string, bool) {
	data := clipboard.Read(clipboard.FmtText)
	if data == nil {
		return "", false
	}
	return string(data), true
}

func Write(text string) error {
	// Write to clipboard - this returns a channel, not an error
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
