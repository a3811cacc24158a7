package gesture

import (
	"testing"
	"time"

	"selection-hook/accessibility"
	"selection-hook/messages"
)

func fakePlatform(cursor accessibility.CursorShape) Platform {
	return Platform{
		WindowUnderMouse: func() accessibility.Window { return 0x42 },
		WindowRect: func(accessibility.Window) (accessibility.Rect, bool) {
			return accessibility.Rect{Right: 800, Bottom: 600}, true
		},
		CursorShape:       func() accessibility.CursorShape { return cursor },
		ClipboardSequence: func() uint64 { return 7 },
	}
}

func TestDragFires(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	trig, ok := c.OnMouseUp(messages.Point{X: 160, Y: 100}, t0.Add(300*time.Millisecond))
	if !ok {
		t.Fatal("expected a trigger")
	}
	if trig.Kind != KindDrag {
		t.Fatalf("Kind = %v, want drag", trig.Kind)
	}
	if trig.MouseStart != (messages.Point{X: 100, Y: 100}) || trig.MouseEnd != (messages.Point{X: 160, Y: 100}) {
		t.Errorf("bracket = %v..%v, want down..up positions", trig.MouseStart, trig.MouseEnd)
	}
	if trig.SeqAtDown != 7 {
		t.Errorf("SeqAtDown = %d, want 7", trig.SeqAtDown)
	}
}

func TestDragRequiresMinimumDistance(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	// 7px of travel: below the threshold, and the first click of a
	// potential double-click, so nothing fires yet
	if _, ok := c.OnMouseUp(messages.Point{X: 107, Y: 100}, t0.Add(100*time.Millisecond)); ok {
		t.Fatal("sub-threshold move must not trigger")
	}
}

func TestDragRejectedWhenTooSlow(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 0, Y: 0}, t0)
	if _, ok := c.OnMouseUp(messages.Point{X: 200, Y: 0}, t0.Add(MaxDragTime+time.Second)); ok {
		t.Fatal("press held past the drag time bound must not trigger")
	}
}

func TestDragRejectedWhenWindowMoved(t *testing.T) {
	rect := accessibility.Rect{Right: 800, Bottom: 600}
	p := fakePlatform(accessibility.CursorBeam)
	p.WindowRect = func(accessibility.Window) (accessibility.Rect, bool) {
		r := rect
		rect.Left += 50 // window moves between down and up
		rect.Right += 50
		return r, true
	}
	c := NewClassifier(p)
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	if _, ok := c.OnMouseUp(messages.Point{X: 200, Y: 100}, t0.Add(time.Second)); ok {
		t.Fatal("drag of the window itself must not trigger")
	}
}

func TestDragRejectedWhenWindowChanged(t *testing.T) {
	windows := []accessibility.Window{0x42, 0x99}
	p := fakePlatform(accessibility.CursorBeam)
	p.WindowUnderMouse = func() accessibility.Window {
		w := windows[0]
		windows = windows[1:]
		return w
	}
	c := NewClassifier(p)
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	if _, ok := c.OnMouseUp(messages.Point{X: 200, Y: 100}, t0.Add(time.Second)); ok {
		t.Fatal("drag ending over another window must not trigger")
	}
}

func TestDragRejectedOverNonTextCursor(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorOther))
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	if _, ok := c.OnMouseUp(messages.Point{X: 200, Y: 100}, t0.Add(time.Second)); ok {
		t.Fatal("application-defined cursor at both ends must not trigger")
	}
}

func doubleClick(t *testing.T, c *Classifier, pos messages.Point, t0 time.Time) (Trigger, bool) {
	t.Helper()
	c.OnMouseDown(pos, t0)
	if _, ok := c.OnMouseUp(pos, t0.Add(50*time.Millisecond)); ok {
		t.Fatal("first click must not trigger")
	}
	c.OnMouseDown(pos, t0.Add(200*time.Millisecond))
	return c.OnMouseUp(pos, t0.Add(250*time.Millisecond))
}

func TestDoubleClickFires(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	pos := messages.Point{X: 300, Y: 200}
	trig, ok := doubleClick(t, c, pos, time.Now())
	if !ok {
		t.Fatal("expected a trigger")
	}
	if trig.Kind != KindDoubleClick {
		t.Fatalf("Kind = %v, want double-click", trig.Kind)
	}
	if trig.MouseStart != pos || trig.MouseEnd != pos {
		t.Errorf("double-click bracket must collapse to the click position")
	}
}

func TestDoubleClickRespectsInterval(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	pos := messages.Point{X: 300, Y: 200}
	t0 := time.Now()
	c.OnMouseDown(pos, t0)
	c.OnMouseUp(pos, t0.Add(50*time.Millisecond))
	// second click arrives after the interval expired
	c.OnMouseDown(pos, t0.Add(900*time.Millisecond))
	if _, ok := c.OnMouseUp(pos, t0.Add(950*time.Millisecond)); ok {
		t.Fatal("slow second click must not trigger")
	}
}

func TestDoubleClickIntervalConfigurable(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	c.SetDoubleClickTime(1200 * time.Millisecond)
	pos := messages.Point{X: 300, Y: 200}
	t0 := time.Now()
	c.OnMouseDown(pos, t0)
	c.OnMouseUp(pos, t0.Add(50*time.Millisecond))
	c.OnMouseDown(pos, t0.Add(900*time.Millisecond))
	trig, ok := c.OnMouseUp(pos, t0.Add(950*time.Millisecond))
	if !ok || trig.Kind != KindDoubleClick {
		t.Fatal("widened interval must accept the slow second click")
	}
}

func TestDoubleClickRespectsDistance(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 300, Y: 200}, t0)
	c.OnMouseUp(messages.Point{X: 300, Y: 200}, t0.Add(50*time.Millisecond))
	c.OnMouseDown(messages.Point{X: 305, Y: 200}, t0.Add(200*time.Millisecond))
	if _, ok := c.OnMouseUp(messages.Point{X: 305, Y: 200}, t0.Add(250*time.Millisecond)); ok {
		t.Fatal("second click 5px away must not trigger")
	}
}

func TestShiftClickFires(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	t0 := time.Now()
	anchor := messages.Point{X: 100, Y: 100}
	c.OnMouseDown(anchor, t0)
	c.OnMouseUp(anchor, t0.Add(50*time.Millisecond))

	c.OnKey(160, true) // left Shift down
	end := messages.Point{X: 104, Y: 100}
	c.OnMouseDown(end, t0.Add(2*time.Second))
	trig, ok := c.OnMouseUp(end, t0.Add(2*time.Second+50*time.Millisecond))
	if !ok {
		t.Fatal("expected a trigger")
	}
	if trig.Kind != KindShiftClick {
		t.Fatalf("Kind = %v, want shift-click", trig.Kind)
	}
	if trig.MouseStart != anchor {
		t.Errorf("MouseStart = %v, want the previous mouse-up %v", trig.MouseStart, anchor)
	}
	if trig.MouseEnd != end {
		t.Errorf("MouseEnd = %v, want %v", trig.MouseEnd, end)
	}
}

func TestShiftClickRequiresShiftAlone(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	c.OnMouseUp(messages.Point{X: 100, Y: 100}, t0.Add(50*time.Millisecond))

	c.OnKey(160, true) // Shift
	c.OnKey(162, true) // Ctrl as well: a Ctrl+Shift shortcut, not a selection
	c.OnMouseDown(messages.Point{X: 104, Y: 100}, t0.Add(2*time.Second))
	if _, ok := c.OnMouseUp(messages.Point{X: 104, Y: 100}, t0.Add(2*time.Second+50*time.Millisecond)); ok {
		t.Fatal("shift-click with Ctrl held must not trigger")
	}

	c.OnKey(162, false)
	c.OnMouseDown(messages.Point{X: 108, Y: 100}, t0.Add(4*time.Second))
	if trig, ok := c.OnMouseUp(messages.Point{X: 108, Y: 100}, t0.Add(4*time.Second+50*time.Millisecond)); !ok || trig.Kind != KindShiftClick {
		t.Fatal("shift alone must trigger once Ctrl is released")
	}
}

func TestDragWinsOverShiftClick(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	c.OnKey(160, true)
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	trig, ok := c.OnMouseUp(messages.Point{X: 200, Y: 100}, t0.Add(time.Second))
	if !ok || trig.Kind != KindDrag {
		t.Fatalf("Kind = %v, want drag to outrank shift-click", trig.Kind)
	}
}

func TestPassiveSuppressesTriggers(t *testing.T) {
	c := NewClassifier(fakePlatform(accessibility.CursorBeam))
	c.SetPassive(true)
	t0 := time.Now()
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0)
	if _, ok := c.OnMouseUp(messages.Point{X: 200, Y: 100}, t0.Add(time.Second)); ok {
		t.Fatal("passive mode must suppress gesture triggers")
	}

	// turning passive off again restores detection
	c.SetPassive(false)
	c.OnMouseDown(messages.Point{X: 100, Y: 100}, t0.Add(2*time.Second))
	if _, ok := c.OnMouseUp(messages.Point{X: 200, Y: 100}, t0.Add(3*time.Second)); !ok {
		t.Fatal("expected trigger after leaving passive mode")
	}
}
