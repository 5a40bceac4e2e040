// Package gesture turns pointer input into time-window changes.
package gesture

// Event is the sealed interface for pointer input fed to a Controller.
//
// go-sumtype:decl Event
type Event interface {
	sealed()
}

// Point is a pointer position in pixels.
type Point struct {
	X float64
	Y float64
}

// MouseDown starts a drag.
type MouseDown struct {
	X float64
	Y float64
}

func (MouseDown) sealed() {}

// MouseMove moves the pointer.
type MouseMove struct {
	X float64
	Y float64
}

func (MouseMove) sealed() {}

// MouseUp releases the pointer.
type MouseUp struct {
	X float64
	Y float64
}

func (MouseUp) sealed() {}

// Wheel scrolls. DeltaX pans, DeltaY zooms around X.
// Negative DeltaY zooms in.
type Wheel struct {
	X      float64
	Y      float64
	DeltaX float64
	DeltaY float64
}

func (Wheel) sealed() {}

// TouchStart reports all touches currently down.
type TouchStart struct {
	Touches []Point
}

func (TouchStart) sealed() {}

// TouchMove reports all touches currently down.
type TouchMove struct {
	Touches []Point
}

func (TouchMove) sealed() {}

// TouchEnd reports the touches still down after a release.
type TouchEnd struct {
	Touches []Point
}

func (TouchEnd) sealed() {}

// Cancel aborts the active gesture, e.g. a touch cancelled by the system.
type Cancel struct{}

func (Cancel) sealed() {}
