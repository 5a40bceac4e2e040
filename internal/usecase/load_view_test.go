package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/testutil"
	"github.com/runoshun/daisen/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadView_Execute(t *testing.T) {
	source := testutil.NewMockTraceSource(
		newTask("a", "", "GPU", 0, 5),
		newTask("b", "", "CPU", 1, 2),
		newTask("late", "", "GPU", 20, 30),
	)
	uc := usecase.NewLoadView(source)

	t.Run("loads both panes", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.LoadViewInput{
			Window:   domain.TimeWindow{StartTime: 0, EndTime: 10},
			Location: "GPU",
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, taskIDs(out.Timeline))
		assert.Equal(t, []string{"a"}, taskIDs(out.Component))
	})

	t.Run("skips component pane without location", func(t *testing.T) {
		before := source.TasksCalls
		out, err := uc.Execute(context.Background(), usecase.LoadViewInput{
			Window: domain.TimeWindow{StartTime: 0, EndTime: 10},
			Where:  "CPU",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, taskIDs(out.Timeline))
		assert.Nil(t, out.Component)
		assert.Equal(t, before+1, source.TasksCalls)
	})

	t.Run("rejects reversed window", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), usecase.LoadViewInput{
			Window: domain.TimeWindow{StartTime: 3, EndTime: 1},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
	})
}

func TestLoadView_Error(t *testing.T) {
	source := testutil.NewMockTraceSource()
	source.TasksErr = errors.New("connection refused")
	uc := usecase.NewLoadView(source)

	_, err := uc.Execute(context.Background(), usecase.LoadViewInput{
		Window:   domain.TimeWindow{StartTime: 0, EndTime: 1},
		Location: "GPU",
	})

	assert.ErrorContains(t, err, "connection refused")
}
