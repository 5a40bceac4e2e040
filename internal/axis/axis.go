// Package axis maps between trace time and horizontal pixel positions.
package axis

import "github.com/runoshun/daisen/internal/domain"

// Axis is a linear time-to-pixel mapping for one view.
// Each view owns its own Axis; keeping several axes on the same window is
// the job of whoever owns the views.
type Axis struct {
	start float64
	end   float64
	left  float64
	right float64
}

// New creates an Axis covering [start, end] over [left, right] pixels.
func New(start, end, left, right float64) *Axis {
	return &Axis{start: start, end: end, left: left, right: right}
}

// SetRange sets the visible time window.
func (a *Axis) SetRange(start, end float64) {
	a.start = start
	a.end = end
}

// Resize sets the pixel extent, keeping the time window.
func (a *Axis) Resize(left, right float64) {
	a.left = left
	a.right = right
}

// Scale maps a time to a pixel position.
// A zero-length window maps every time to the left edge.
func (a *Axis) Scale(t float64) float64 {
	d := a.end - a.start
	if d == 0 {
		return a.left
	}
	return a.left + (t-a.start)/d*(a.right-a.left)
}

// Unscale maps a pixel position back to a time.
// A zero-width axis maps every pixel to the window start.
func (a *Axis) Unscale(px float64) float64 {
	w := a.right - a.left
	if w == 0 {
		return a.start
	}
	return a.start + (px-a.left)/w*(a.end-a.start)
}

// Status returns a snapshot of the mapping.
func (a *Axis) Status() domain.AxisStatus {
	return domain.AxisStatus{
		StartTime:  a.start,
		EndTime:    a.end,
		PixelLeft:  a.left,
		PixelRight: a.right,
	}
}

// Window returns the visible time window.
func (a *Axis) Window() domain.TimeWindow {
	return domain.TimeWindow{StartTime: a.start, EndTime: a.end}
}
