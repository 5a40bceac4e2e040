package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daisen/internal/domain"
)

// LoadTasksInput contains the parameters for loading tasks.
type LoadTasksInput struct {
	Query domain.TraceQuery // Query forwarded to the trace source
}

// LoadTasksOutput contains the loaded tasks.
type LoadTasksOutput struct {
	Tasks []*domain.Task
}

// LoadTasks is the use case for fetching task records from a trace.
type LoadTasks struct {
	source domain.TraceSource
}

// NewLoadTasks creates a new LoadTasks use case.
func NewLoadTasks(source domain.TraceSource) *LoadTasks {
	return &LoadTasks{source: source}
}

// Execute fetches the tasks matching the query.
func (uc *LoadTasks) Execute(ctx context.Context, in LoadTasksInput) (*LoadTasksOutput, error) {
	if err := validateQuery(in.Query); err != nil {
		return nil, err
	}

	tasks, err := uc.source.Tasks(ctx, in.Query)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return &LoadTasksOutput{Tasks: tasks}, nil
}

func validateQuery(q domain.TraceQuery) error {
	if q.StartTime == nil || q.EndTime == nil {
		return nil
	}
	w := domain.TimeWindow{StartTime: *q.StartTime, EndTime: *q.EndTime}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: [%g, %g]", err, w.StartTime, w.EndTime)
	}
	return nil
}
