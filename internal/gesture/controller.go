package gesture

import (
	"fmt"
	"math"

	"github.com/runoshun/daisen/internal/domain"
)

// ZoomHandler is the view a Controller drives.
type ZoomHandler interface {
	// Region returns the pixel area the view occupies.
	Region() domain.Rect

	// AxisStatus returns the current time/pixel mapping of the view.
	AxisStatus() domain.AxisStatus

	// TemporaryTimeShift redraws the loaded tasks for a new window.
	TemporaryTimeShift(start, end float64)

	// PermanentTimeShift commits a new window and reloads its tasks.
	PermanentTimeShift(start, end float64)
}

// Controller interprets pointer events for one ZoomHandler.
// Fields are ordered to minimize memory padding.
type Controller struct {
	handler       ZoomHandler
	debounce      *Debouncer
	logger        domain.Logger
	scope         string
	snapshot      domain.AxisStatus // Window when the gesture began
	dragBase      domain.AxisStatus // Window the drag pans from
	pinchTimes    [2]float64
	dragStartX    float64
	lastX         float64
	dragThreshold float64
	zoomBase      float64
	state         State
	dragMoved     bool
	armedAtStart  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDragThreshold sets how far a drag must move to commit on release.
func WithDragThreshold(px float64) Option {
	return func(c *Controller) { c.dragThreshold = px }
}

// WithZoomBase sets the zoom factor per unit of vertical wheel delta.
func WithZoomBase(base float64) Option {
	return func(c *Controller) { c.zoomBase = base }
}

// WithLogger sets the logger and the scope name used for its messages.
func WithLogger(l domain.Logger, scope string) Option {
	return func(c *Controller) {
		c.logger = l
		c.scope = scope
	}
}

// NewController creates a Controller in the idle state.
func NewController(h ZoomHandler, d *Debouncer, opts ...Option) *Controller {
	c := &Controller{
		handler:       h,
		debounce:      d,
		logger:        domain.NopLogger{},
		dragThreshold: domain.DefaultDragThreshold,
		zoomBase:      domain.DefaultZoomBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewControllerFromConfig creates a Controller from the [gesture] settings.
func NewControllerFromConfig(h ZoomHandler, cfg domain.GestureConfig, clock domain.Clock, opts ...Option) *Controller {
	base := []Option{
		WithDragThreshold(cfg.DragThreshold),
		WithZoomBase(cfg.ZoomBase),
	}
	return NewController(h, NewDebouncer(cfg.SettleDelay(), clock), append(base, opts...)...)
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Moved reports whether the current or last drag moved the window.
// A drag that did not is a click.
func (c *Controller) Moved() bool {
	return c.dragMoved
}

// Debouncer returns the settle debouncer.
func (c *Controller) Debouncer() *Debouncer {
	return c.debounce
}

// Handle applies one event.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case MouseDown:
		c.startDrag(ev.X)
	case MouseMove:
		if c.state == StateDragging {
			c.moveDrag(ev.X)
		}
	case MouseUp:
		if c.state == StateDragging {
			c.endDrag(ev.X)
		}
	case Wheel:
		c.wheel(ev)
	case TouchStart:
		c.touchStart(ev.Touches)
	case TouchMove:
		c.touchMove(ev.Touches)
	case TouchEnd:
		c.touchEnd(ev.Touches)
	case Cancel:
		c.cancel()
	}
}

// Settle is called when the settle timer for token expires. It commits the
// current window and returns true unless the token is stale.
func (c *Controller) Settle(token uint64) bool {
	if !c.debounce.Fire(token) {
		return false
	}
	if c.state == StateDragging || c.state == StatePinching {
		// Commit once the pointers are released.
		c.debounce.Touch()
		return false
	}
	s := c.handler.AxisStatus()
	c.logger.Debug(c.scope, "gesture", "settled: "+windowString(s.StartTime, s.EndTime))
	c.handler.PermanentTimeShift(s.StartTime, s.EndTime)
	return true
}

func (c *Controller) setState(s State) {
	if c.state != s {
		c.logger.Debug(c.scope, "gesture", fmt.Sprintf("%s -> %s", c.state, s))
	}
	c.state = s
}

func (c *Controller) begin() {
	c.snapshot = c.handler.AxisStatus()
	c.armedAtStart = c.debounce.Armed()
}

func (c *Controller) startDrag(x float64) {
	if c.state != StateIdle {
		return
	}
	c.begin()
	c.dragBase = c.snapshot
	c.dragStartX = x
	c.lastX = x
	c.dragMoved = false
	c.setState(StateDragging)
}

// dragWindow returns the window after panning dragBase by x - start.
func (c *Controller) dragWindow(x float64) (float64, float64) {
	s := c.dragBase
	w := s.PixelWidth()
	if w <= 0 {
		return s.StartTime, s.EndTime
	}
	shift := -(x - c.dragStartX) / w * s.Duration()
	return s.StartTime + shift, s.EndTime + shift
}

func (c *Controller) moveDrag(x float64) {
	c.lastX = x
	if math.Abs(x-c.dragStartX) > c.dragThreshold {
		c.dragMoved = true
	}
	if !c.dragMoved {
		return
	}
	c.temporary(c.dragWindow(x))
}

func (c *Controller) endDrag(x float64) {
	c.setState(StateIdle)
	if math.Abs(x-c.dragStartX) > c.dragThreshold {
		c.dragMoved = true
	}
	if !c.dragMoved {
		return
	}
	start, end := c.dragWindow(x)
	if start == c.snapshot.StartTime && end == c.snapshot.EndTime {
		// Dragged back to where it began.
		c.restore()
		return
	}
	c.debounce.Cancel()
	c.handler.PermanentTimeShift(start, end)
}

func (c *Controller) wheel(ev Wheel) {
	s := c.handler.AxisStatus()
	w := s.PixelWidth()
	if w <= 0 {
		return
	}
	start, end := s.StartTime, s.EndTime

	if ev.DeltaX != 0 {
		shift := ev.DeltaX / w * (end - start)
		start += shift
		end += shift
	}
	if ev.DeltaY != 0 {
		anchor := start + (ev.X-s.PixelLeft)/w*(end-start)
		factor := math.Pow(c.zoomBase, ev.DeltaY)
		start = anchor - (anchor-start)*factor
		end = anchor + (end-anchor)*factor
	}
	c.temporary(start, end)

	if c.state == StateDragging {
		// Keep panning from the zoomed window.
		c.dragBase = c.handler.AxisStatus()
		c.dragStartX = c.lastX
		c.dragMoved = true
	}
}

func (c *Controller) touchStart(touches []Point) {
	switch {
	case len(touches) >= 2 && c.state != StatePinching:
		if c.state == StateIdle {
			c.begin()
		}
		c.startPinch(touches[0], touches[1])
	case len(touches) == 1 && c.state == StateIdle:
		c.startDrag(touches[0].X)
	}
}

func (c *Controller) startPinch(p1, p2 Point) {
	s := c.handler.AxisStatus()
	c.pinchTimes = [2]float64{unscale(s, p1.X), unscale(s, p2.X)}
	c.setState(StatePinching)
}

func (c *Controller) touchMove(touches []Point) {
	switch c.state {
	case StateDragging:
		if len(touches) > 0 {
			c.moveDrag(touches[0].X)
		}
	case StatePinching:
		if len(touches) >= 2 {
			c.movePinch(touches[0], touches[1])
		}
	case StateIdle:
	}
}

// movePinch keeps the times first touched under each finger beneath them.
func (c *Controller) movePinch(p1, p2 Point) {
	t1, t2 := c.pinchTimes[0], c.pinchTimes[1]
	if t1 == t2 {
		return
	}
	pps := (p2.X - p1.X) / (t2 - t1)
	if pps <= 0 || math.IsInf(pps, 0) {
		return
	}
	s := c.handler.AxisStatus()
	start := t1 - (p1.X-s.PixelLeft)/pps
	c.temporary(start, start+s.PixelWidth()/pps)
}

func (c *Controller) touchEnd(remaining []Point) {
	switch c.state {
	case StateDragging:
		c.endDrag(c.lastX)
	case StatePinching:
		if len(remaining) < 2 {
			// The settle timer commits the pinch.
			c.setState(StateIdle)
		}
	case StateIdle:
	}
}

func (c *Controller) cancel() {
	if c.state == StateIdle {
		return
	}
	c.setState(StateIdle)
	c.restore()
}

// restore shows the window the gesture began with and drops the settle
// timer armed by the gesture.
func (c *Controller) restore() {
	c.debounce.Cancel()
	c.handler.TemporaryTimeShift(c.snapshot.StartTime, c.snapshot.EndTime)
	if c.armedAtStart {
		c.debounce.Touch()
	}
}

func (c *Controller) temporary(start, end float64) {
	if end <= start || math.IsNaN(start) || math.IsNaN(end) {
		return
	}
	c.handler.TemporaryTimeShift(start, end)
	c.debounce.Touch()
}

func unscale(s domain.AxisStatus, px float64) float64 {
	w := s.PixelWidth()
	if w == 0 {
		return s.StartTime
	}
	return s.StartTime + (px-s.PixelLeft)/w*s.Duration()
}

func windowString(start, end float64) string {
	return fmt.Sprintf("[%g, %g]", start, end)
}
