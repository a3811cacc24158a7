// Package display describes the virtual screen spanning all attached
// monitors, so reported selection coordinates can be clamped to it.
package display

import (
	"image"

	"github.com/kbinani/screenshot"

	"selection-hook/messages"
)

// VirtualBounds returns the union rectangle of all active displays. With
// no display attached it returns the zero rectangle.
func VirtualBounds() image.Rectangle {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}
	}
	bounds := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// Clamp pins p inside bounds. Points from a drag that left the screen
// edge otherwise carry coordinates no display owns.
func Clamp(p messages.Point, bounds image.Rectangle) messages.Point {
	if bounds.Empty() {
		return p
	}
	if p.X < int32(bounds.Min.X) {
		p.X = int32(bounds.Min.X)
	}
	if p.X > int32(bounds.Max.X-1) {
		p.X = int32(bounds.Max.X - 1)
	}
	if p.Y < int32(bounds.Min.Y) {
		p.Y = int32(bounds.Min.Y)
	}
	if p.Y > int32(bounds.Max.Y-1) {
		p.Y = int32(bounds.Max.Y - 1)
	}
	return p
}

// ClampAll clamps every point of a selection result in place.
func ClampAll(res *messages.SelectionResult) {
	bounds := VirtualBounds()
	if bounds.Empty() {
		return
	}
	res.MouseStart = Clamp(res.MouseStart, bounds)
	res.MouseEnd = Clamp(res.MouseEnd, bounds)
	if res.PosLevel == messages.PosFull || res.PosLevel == messages.PosDetailed {
		res.StartTop = Clamp(res.StartTop, bounds)
		res.StartBottom = Clamp(res.StartBottom, bounds)
		res.EndTop = Clamp(res.EndTop, bounds)
		res.EndBottom = Clamp(res.EndBottom, bounds)
	}
}
