// Package monitor owns the global input hook. It drains the gohook event
// stream on a dedicated goroutine and hands translated mouse and
// keyboard events to a handler.
package monitor

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	gohook "github.com/robotn/gohook"

	"selection-hook/messages"
)

// ErrMonitorStart means the global input hook could not be installed.
var ErrMonitorStart = errors.New("monitor: input hook failed to start")

// Handler receives translated input events. Both methods are called from
// the monitor's drain goroutine, in arrival order.
type Handler interface {
	HandleMouse(ev messages.MouseEvent, when time.Time)
	HandleKey(ev messages.KeyboardEvent, when time.Time)
}

// Monitor wraps the process-wide input hook. Only one Monitor may run at
// a time; the hook is global state.
type Monitor struct {
	running atomic.Bool
	done    chan struct{}
}

func New() *Monitor {
	return &Monitor{}
}

// Start installs the hook and begins draining events into h.
func (m *Monitor) Start(h Handler) error {
	if !m.running.CompareAndSwap(false, true) {
		return errors.New("monitor: already running")
	}

	evChan := gohook.Start()
	if evChan == nil {
		m.running.Store(false)
		return ErrMonitorStart
	}

	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in monitor goroutine: %v", r)
			}
		}()
		for ev := range evChan {
			m.dispatch(h, ev)
		}
	}()
	return nil
}

// Stop uninstalls the hook and waits briefly for the drain goroutine.
func (m *Monitor) Stop() {
	if !m.running.CompareAndSwap(true, false) {
		return
	}
	gohook.End()
	select {
	case <-m.done:
	case <-time.After(time.Second):
		log.Printf("Monitor drain goroutine did not exit within 1s")
	}
}

func (m *Monitor) dispatch(h Handler, ev gohook.Event) {
	now := time.Now()
	switch ev.Kind {
	case gohook.MouseDown, gohook.MouseHold:
		h.HandleMouse(messages.MouseEvent{
			Action: "mouse-down",
			Pos:    messages.Point{X: int32(ev.X), Y: int32(ev.Y)},
			Button: translateButton(ev.Button),
		}, now)
	case gohook.MouseUp:
		h.HandleMouse(messages.MouseEvent{
			Action: "mouse-up",
			Pos:    messages.Point{X: int32(ev.X), Y: int32(ev.Y)},
			Button: translateButton(ev.Button),
		}, now)
	case gohook.MouseMove, gohook.MouseDrag:
		h.HandleMouse(messages.MouseEvent{
			Action: "mouse-move",
			Pos:    messages.Point{X: int32(ev.X), Y: int32(ev.Y)},
			Button: messages.ButtonNone,
		}, now)
	case gohook.MouseWheel:
		axis := messages.WheelVertical
		if ev.Direction == wheelHorizontal {
			axis = messages.WheelHorizontal
		}
		flag := int32(1)
		if ev.Rotation < 0 {
			flag = -1
		}
		h.HandleMouse(messages.MouseEvent{
			Action: "mouse-wheel",
			Pos:    messages.Point{X: int32(ev.X), Y: int32(ev.Y)},
			Button: axis,
			Flag:   flag,
		}, now)
	case gohook.KeyDown, gohook.KeyHold:
		h.HandleKey(keyboardEvent("key-down", ev.Rawcode), now)
	case gohook.KeyUp:
		h.HandleKey(keyboardEvent("key-up", ev.Rawcode), now)
	}
}

// libuiohook reports wheel direction 3 for vertical, 4 for horizontal
const wheelHorizontal = 4

// translateButton maps libuiohook button numbers (1=left, 2=right,
// 3=middle, 4/5=X buttons) to the reported button codes.
func translateButton(b uint16) messages.MouseButton {
	switch b {
	case 1:
		return messages.ButtonLeft
	case 2:
		return messages.ButtonRight
	case 3:
		return messages.ButtonMiddle
	case 4:
		return messages.ButtonBack
	case 5:
		return messages.ButtonForward
	}
	return messages.ButtonNone
}

func keyboardEvent(action string, rawcode uint16) messages.KeyboardEvent {
	name, modifier := KeyName(rawcode)
	return messages.KeyboardEvent{
		Action:   action,
		Key:      name,
		Rawcode:  rawcode,
		Modifier: modifier,
	}
}
