package domain

// Dim is a computed axis-aligned rectangle together with the time span it
// was computed from. Dim is a value: a layout pass replaces a task's Dim
// pointer with a fresh value and never mutates an existing one.
type Dim struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	StartTime float64 `json:"start_time" yaml:"start_time"`
	EndTime   float64 `json:"end_time" yaml:"end_time"`
}

// Right returns X + Width.
func (d Dim) Right() float64 {
	return d.X + d.Width
}

// Bottom returns Y + Height.
func (d Dim) Bottom() float64 {
	return d.Y + d.Height
}

// Rect is a pixel region occupied by a view.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies within the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// TimeWindow is a visible time range in seconds.
type TimeWindow struct {
	StartTime float64 `json:"start_time" yaml:"start_time" toml:"start_time"`
	EndTime   float64 `json:"end_time" yaml:"end_time" toml:"end_time"`
}

// Duration returns EndTime - StartTime.
func (w TimeWindow) Duration() float64 {
	return w.EndTime - w.StartTime
}

// Validate returns ErrInvalidWindow if the window is reversed.
func (w TimeWindow) Validate() error {
	if w.EndTime < w.StartTime {
		return ErrInvalidWindow
	}
	return nil
}

// Overlaps reports whether the two windows share any time.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.StartTime < o.EndTime && o.StartTime < w.EndTime
}

// AxisStatus is an immutable snapshot of a time axis mapping.
type AxisStatus struct {
	StartTime  float64
	EndTime    float64
	PixelLeft  float64
	PixelRight float64
}

// Window returns the time window of the snapshot.
func (s AxisStatus) Window() TimeWindow {
	return TimeWindow{StartTime: s.StartTime, EndTime: s.EndTime}
}

// PixelWidth returns PixelRight - PixelLeft.
func (s AxisStatus) PixelWidth() float64 {
	return s.PixelRight - s.PixelLeft
}

// Duration returns EndTime - StartTime.
func (s AxisStatus) Duration() float64 {
	return s.EndTime - s.StartTime
}

// SpanOf returns the smallest window covering all tasks.
// ok is false when tasks is empty.
func SpanOf(tasks []*Task) (w TimeWindow, ok bool) {
	for i, t := range tasks {
		if i == 0 || t.StartTime < w.StartTime {
			w.StartTime = t.StartTime
		}
		if i == 0 || t.EndTime > w.EndTime {
			w.EndTime = t.EndTime
		}
	}
	return w, len(tasks) > 0
}
