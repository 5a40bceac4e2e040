package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/runoshun/daisen/internal/domain"
)

// LoadViewInput contains the parameters for loading both panes.
type LoadViewInput struct {
	Where    string            // Location filter of the timeline pane (empty = all)
	Location string            // Component shown in the component pane (empty = none)
	Window   domain.TimeWindow // Window to fetch
}

// LoadViewOutput contains the tasks of both panes.
type LoadViewOutput struct {
	Timeline  []*domain.Task
	Component []*domain.Task // nil when no component is selected
}

// LoadView fetches the timeline and component tasks of a window
// concurrently.
type LoadView struct {
	source domain.TraceSource
}

// NewLoadView creates a new LoadView use case.
func NewLoadView(source domain.TraceSource) *LoadView {
	return &LoadView{source: source}
}

// Execute runs both queries and fails if either fails.
func (uc *LoadView) Execute(ctx context.Context, in LoadViewInput) (*LoadViewOutput, error) {
	if err := in.Window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: [%g, %g]", err, in.Window.StartTime, in.Window.EndTime)
	}

	out := &LoadViewOutput{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := uc.source.Tasks(gctx, domain.WindowQuery(in.Window, in.Where))
		if err != nil {
			return fmt.Errorf("load timeline: %w", err)
		}
		out.Timeline = tasks
		return nil
	})

	if in.Location != "" {
		g.Go(func() error {
			tasks, err := uc.source.Tasks(gctx, domain.WindowQuery(in.Window, in.Location))
			if err != nil {
				return fmt.Errorf("load component %s: %w", in.Location, err)
			}
			out.Component = tasks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
