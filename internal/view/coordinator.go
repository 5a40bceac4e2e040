// Package view owns the layout pass and time axis of one on-screen pane and
// keeps several panes on the same time window.
package view

import (
	"fmt"

	"github.com/runoshun/daisen/internal/axis"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/gesture"
	"github.com/runoshun/daisen/internal/layout"
)

// Renderer draws the outcome of a layout pass.
type Renderer interface {
	// Draw receives the visible tasks sorted by level.
	Draw(r Result)

	// Highlight marks the tasks with the given IDs.
	Highlight(ids []string)
}

// NopRenderer discards everything.
type NopRenderer struct{}

// Draw implements Renderer.
func (NopRenderer) Draw(Result) {}

// Highlight implements Renderer.
func (NopRenderer) Highlight([]string) {}

// Result is the output of one render.
// Fields are ordered to minimize memory padding.
type Result struct {
	Err         error
	Label       string
	Tasks       []*domain.Task
	Highlighted []string
	Region      domain.Rect
	Window      domain.TimeWindow
	MaxLevel    int
}

// Coordinator lays out the tasks of one pane against its own time axis and
// serves as the gesture.ZoomHandler for that pane.
// Fields are ordered to minimize memory padding.
type Coordinator struct {
	renderer   Renderer
	logger     domain.Logger
	axis       *axis.Axis
	engine     *layout.Engine
	group      *Group
	onLabel    func(string)
	onCommit   func(domain.TimeWindow)
	highlight  func(*domain.Task) bool
	name       string
	location   string
	label      string
	tasks      []*domain.Task
	last       Result
	region     domain.Rect
	minVisible float64
}

var _ gesture.ZoomHandler = (*Coordinator)(nil)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRenderer sets the rendering backend.
func WithRenderer(r Renderer) Option {
	return func(c *Coordinator) { c.renderer = r }
}

// WithLogger sets the logger. The pane name is used as the log scope.
func WithLogger(l domain.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithMinVisibleSize sets the size below which nested bars are not drawn.
func WithMinVisibleSize(px float64) Option {
	return func(c *Coordinator) { c.minVisible = px }
}

// OnLabel registers a callback invoked when the pane label changes.
func OnLabel(fn func(string)) Option {
	return func(c *Coordinator) { c.onLabel = fn }
}

// OnCommit registers a callback invoked with the window of a permanent
// shift. The callback is expected to reload the tasks of the pane.
func OnCommit(fn func(domain.TimeWindow)) Option {
	return func(c *Coordinator) { c.onCommit = fn }
}

// NewCoordinator creates a Coordinator named name. The window starts at
// [0, 1] over an empty region.
func NewCoordinator(name string, engine *layout.Engine, opts ...Option) *Coordinator {
	if engine == nil {
		engine = layout.NewEngine()
	}
	c := &Coordinator{
		name:       name,
		engine:     engine,
		axis:       axis.New(0, 1, 0, 0),
		renderer:   NopRenderer{},
		logger:     domain.NopLogger{},
		minVisible: domain.DefaultMinVisibleSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the pane name.
func (c *Coordinator) Name() string {
	return c.name
}

// Axis returns the time axis of the pane.
func (c *Coordinator) Axis() *axis.Axis {
	return c.axis
}

// Region implements gesture.ZoomHandler.
func (c *Coordinator) Region() domain.Rect {
	return c.region
}

// AxisStatus implements gesture.ZoomHandler.
func (c *Coordinator) AxisStatus() domain.AxisStatus {
	return c.axis.Status()
}

// Window returns the visible time window.
func (c *Coordinator) Window() domain.TimeWindow {
	return c.axis.Window()
}

// Result returns the outcome of the last render.
func (c *Coordinator) Result() Result {
	return c.last
}

// Tasks returns the task set the pane currently renders.
func (c *Coordinator) Tasks() []*domain.Task {
	return c.tasks
}

// SetRegion moves the pane and re-renders.
func (c *Coordinator) SetRegion(r domain.Rect) {
	c.region = r
	c.axis.Resize(r.X, r.X+r.Width)
	c.rerender()
}

// SetTimeRange changes the visible window and re-renders the current tasks.
// A reversed window is ignored.
func (c *Coordinator) SetTimeRange(start, end float64) {
	if err := (domain.TimeWindow{StartTime: start, EndTime: end}).Validate(); err != nil {
		c.logger.Warn(c.name, "view", fmt.Sprintf("ignored window [%g, %g]: %v", start, end, err))
		return
	}
	c.axis.SetRange(start, end)
	c.rerender()
}

// SetLocation fixes the pane label to a location. An empty location lets
// the label follow the rendered tasks.
func (c *Coordinator) SetLocation(location string) {
	c.location = location
	c.rerender()
}

// Render replaces the task set and lays it out. The coordinator takes
// ownership of tasks: their derived fields are rewritten on every render.
func (c *Coordinator) Render(tasks []*domain.Task) Result {
	c.tasks = tasks
	return c.rerender()
}

// Highlight marks the visible tasks matching pred. A nil pred clears the
// highlight. The predicate is kept across renders.
func (c *Coordinator) Highlight(pred func(*domain.Task) bool) []string {
	c.highlight = pred
	c.last.Highlighted = c.highlighted(c.last.Tasks)
	c.renderer.Highlight(c.last.Highlighted)
	return c.last.Highlighted
}

// TemporaryTimeShift implements gesture.ZoomHandler. It re-renders the
// loaded tasks for the new window, together with the rest of the group.
func (c *Coordinator) TemporaryTimeShift(start, end float64) {
	if c.group != nil {
		c.group.SetTimeRange(start, end)
		return
	}
	c.SetTimeRange(start, end)
}

// PermanentTimeShift implements gesture.ZoomHandler. It sets the window
// and asks for a reload, once for the whole group. A reversed window is
// ignored.
func (c *Coordinator) PermanentTimeShift(start, end float64) {
	if err := (domain.TimeWindow{StartTime: start, EndTime: end}).Validate(); err != nil {
		c.logger.Warn(c.name, "view", fmt.Sprintf("ignored commit [%g, %g]: %v", start, end, err))
		return
	}
	if c.group != nil {
		c.group.Commit(start, end)
		return
	}
	c.SetTimeRange(start, end)
	if c.onCommit != nil {
		c.onCommit(c.axis.Window())
	}
}

func (c *Coordinator) rerender() Result {
	root, err := layout.BuildForest(c.tasks)
	if err != nil {
		c.logger.Warn(c.name, "layout", err.Error())
	}

	w := c.axis.Window()
	c.engine.Layout(root, domain.Dim{
		X:         c.region.X,
		Y:         c.region.Y,
		Width:     c.region.Width,
		Height:    c.region.Height,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
	})
	visible := layout.Visible(root, c.minVisible)

	c.last = Result{
		Err:         err,
		Label:       c.labelFor(visible),
		Tasks:       visible,
		Highlighted: c.highlighted(visible),
		Region:      c.region,
		Window:      w,
		MaxLevel:    layout.MaxLevel(visible),
	}
	c.renderer.Draw(c.last)

	if c.last.Label != c.label {
		c.label = c.last.Label
		if c.onLabel != nil {
			c.onLabel(c.label)
		}
	}
	return c.last
}

// labelFor returns the fixed location, or the location shared by every
// top-level task, or "" when they differ.
func (c *Coordinator) labelFor(visible []*domain.Task) string {
	if c.location != "" {
		return c.location
	}
	label := ""
	for _, t := range visible {
		if t.Level != 1 {
			break
		}
		switch {
		case label == "":
			label = t.Location
		case label != t.Location:
			return ""
		}
	}
	return label
}

func (c *Coordinator) highlighted(visible []*domain.Task) []string {
	if c.highlight == nil {
		return nil
	}
	var ids []string
	for _, t := range visible {
		if c.highlight(t) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
