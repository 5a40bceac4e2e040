package tui

import (
	"github.com/runoshun/daisen/internal/app"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/gesture"
	"github.com/runoshun/daisen/internal/view"
)

// Pane names, also used as log scopes.
const (
	paneTimeline  = "timeline"
	paneComponent = "component"
)

// pane is one timeline area on screen: a coordinator drawing into a canvas
// and the gesture controller that drives it.
// Fields are ordered to minimize memory padding.
type pane struct {
	coord  *view.Coordinator
	ctrl   *gesture.Controller
	canvas *Canvas
	name   string
	top    int // First terminal row
	rows   int
}

// newPane creates a pane configured from the container.
func newPane(name string, c *app.Container, opts ...view.Option) *pane {
	cfg := c.AppConfig
	canvas := NewCanvas(cfg.View.CellWidth, cfg.View.CellHeight)

	base := []view.Option{
		view.WithRenderer(canvas),
		view.WithLogger(c.FileLogger),
		view.WithMinVisibleSize(cfg.Layout.MinVisibleSize),
	}
	coord := view.NewCoordinator(name, c.LayoutEngine(name), append(base, opts...)...)
	ctrl := gesture.NewControllerFromConfig(coord, cfg.Gesture, c.Clock,
		gesture.WithLogger(c.FileLogger, name))

	return &pane{
		name:   name,
		coord:  coord,
		ctrl:   ctrl,
		canvas: canvas,
	}
}

// place moves the pane to rows [top, top+rows) of a cols-wide screen.
func (p *pane) place(top, cols, rows int) {
	p.top = top
	p.rows = rows
	p.canvas.Resize(cols, rows)
	cw, ch := p.canvas.CellSize()
	p.coord.SetRegion(domain.Rect{
		X:      0,
		Y:      float64(top) * ch,
		Width:  float64(cols) * cw,
		Height: float64(rows) * ch,
	})
}

// contains reports whether the terminal row belongs to the pane.
func (p *pane) contains(row int) bool {
	return row >= p.top && row < p.top+p.rows
}

// pixel returns the pixel position of the centre of a terminal cell.
func (p *pane) pixel(col, row int) (x, y float64) {
	cw, ch := p.canvas.CellSize()
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch
}

// taskAt returns the task drawn at a terminal cell, or nil.
func (p *pane) taskAt(col, row int) *domain.Task {
	if !p.contains(row) {
		return nil
	}
	return p.canvas.TaskAt(col, row-p.top)
}

// centerX returns the pixel x of the middle of the pane.
func (p *pane) centerX() float64 {
	r := p.coord.Region()
	return r.X + r.Width/2
}
