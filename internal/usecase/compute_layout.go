package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/layout"
	"github.com/runoshun/daisen/internal/view"
)

// ComputeLayoutInput contains the parameters for a one-shot layout.
type ComputeLayoutInput struct {
	Query  domain.TraceQuery // Tasks to lay out; its window, if set, is the view window
	Width  float64           // Container width in pixels
	Height float64           // Container height in pixels
}

// ComputeLayoutOutput contains the visible tasks with their geometry.
// Fields are ordered to minimize memory padding.
type ComputeLayoutOutput struct {
	Label    string
	Tasks    []*domain.Task    // Visible tasks sorted by level
	Dropped  []string          // IDs left out because of parent cycles
	Window   domain.TimeWindow // Window the layout was computed for
	MaxLevel int
}

// ComputeLayout loads tasks and lays them out into a fixed container.
type ComputeLayout struct {
	source     domain.TraceSource
	engine     *layout.Engine
	logger     domain.Logger
	minVisible float64
}

// NewComputeLayout creates a new ComputeLayout use case.
func NewComputeLayout(source domain.TraceSource, engine *layout.Engine, minVisible float64, logger domain.Logger) *ComputeLayout {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ComputeLayout{
		source:     source,
		engine:     engine,
		minVisible: minVisible,
		logger:     logger,
	}
}

// Execute loads the tasks of the query and computes their rectangles.
// Without a window in the query, the span of the loaded tasks is used.
func (uc *ComputeLayout) Execute(ctx context.Context, in ComputeLayoutInput) (*ComputeLayoutOutput, error) {
	if in.Width <= 0 || in.Height <= 0 {
		return nil, domain.ErrInvalidViewSize
	}

	loaded, err := NewLoadTasks(uc.source).Execute(ctx, LoadTasksInput{Query: in.Query})
	if err != nil {
		return nil, err
	}

	window, _ := domain.SpanOf(loaded.Tasks)
	if in.Query.StartTime != nil {
		window.StartTime = *in.Query.StartTime
	}
	if in.Query.EndTime != nil {
		window.EndTime = *in.Query.EndTime
	}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: [%g, %g]", err, window.StartTime, window.EndTime)
	}

	c := view.NewCoordinator("layout", uc.engine,
		view.WithLogger(uc.logger),
		view.WithMinVisibleSize(uc.minVisible))
	c.SetLocation(in.Query.Where)
	c.SetRegion(domain.Rect{Width: in.Width, Height: in.Height})
	c.SetTimeRange(window.StartTime, window.EndTime)
	res := c.Render(loaded.Tasks)

	out := &ComputeLayoutOutput{
		Label:    res.Label,
		Tasks:    res.Tasks,
		Window:   res.Window,
		MaxLevel: res.MaxLevel,
	}
	var cycle *domain.CycleError
	if errors.As(res.Err, &cycle) {
		out.Dropped = cycle.IDs
	}
	return out, nil
}
