package view

import "github.com/runoshun/daisen/internal/domain"

// Group keeps several panes on one time window. Every pane owns its own
// axis; the group drives them all to the same range.
type Group struct {
	history  *History
	onCommit func(domain.TimeWindow)
	members  []*Coordinator
	window   domain.TimeWindow
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithHistory records every committed window in h.
func WithHistory(h *History) GroupOption {
	return func(g *Group) { g.history = h }
}

// OnGroupCommit registers a callback invoked once per permanent shift.
func OnGroupCommit(fn func(domain.TimeWindow)) GroupOption {
	return func(g *Group) { g.onCommit = fn }
}

// NewGroup creates an empty group showing window. The window is the first
// history entry.
func NewGroup(window domain.TimeWindow, opts ...GroupOption) *Group {
	g := &Group{window: window}
	for _, opt := range opts {
		opt(g)
	}
	if g.history != nil {
		g.history.Push(window)
	}
	return g
}

// Add joins c to the group and moves it to the group window.
func (g *Group) Add(c *Coordinator) {
	c.group = g
	g.members = append(g.members, c)
	c.SetTimeRange(g.window.StartTime, g.window.EndTime)
}

// Members returns the panes in the order they were added.
func (g *Group) Members() []*Coordinator {
	return g.members
}

// Window returns the shared window.
func (g *Group) Window() domain.TimeWindow {
	return g.window
}

// History returns the window history, or nil.
func (g *Group) History() *History {
	return g.history
}

// SetTimeRange moves every pane to [start, end] without committing.
func (g *Group) SetTimeRange(start, end float64) {
	w := domain.TimeWindow{StartTime: start, EndTime: end}
	if w.Validate() != nil {
		return
	}
	g.window = w
	for _, m := range g.members {
		m.SetTimeRange(start, end)
	}
}

// Commit moves every pane to [start, end], records the window and
// notifies the commit callback once. A reversed window is ignored.
func (g *Group) Commit(start, end float64) {
	if (domain.TimeWindow{StartTime: start, EndTime: end}).Validate() != nil {
		return
	}
	g.SetTimeRange(start, end)
	if g.history != nil {
		g.history.Push(g.window)
	}
	g.notify()
}

// Back returns to the previously committed window. It reports false when
// there is nothing to go back to.
func (g *Group) Back() bool {
	if g.history == nil {
		return false
	}
	w, ok := g.history.Back()
	if !ok {
		return false
	}
	g.SetTimeRange(w.StartTime, w.EndTime)
	g.notify()
	return true
}

func (g *Group) notify() {
	if g.onCommit != nil {
		g.onCommit(g.window)
	}
}
