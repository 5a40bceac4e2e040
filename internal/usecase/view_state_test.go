package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/testutil"
	"github.com/runoshun/daisen/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreView_Execute(t *testing.T) {
	store := testutil.NewMockViewStateStore()
	store.States["/t/a.json"] = domain.ViewState{
		Window: domain.TimeWindow{StartTime: 1, EndTime: 2},
		Where:  "GPU1",
	}
	store.States["/t/flat.json"] = domain.ViewState{
		Window:   domain.TimeWindow{StartTime: 3, EndTime: 3},
		Location: "DRAM",
	}
	uc := usecase.NewRestoreView(store)

	t.Run("found", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.RestoreViewInput{Key: "/t/a.json"})

		require.NoError(t, err)
		assert.True(t, out.Found)
		assert.True(t, out.HasWindow)
		assert.Equal(t, "GPU1", out.State.Where)
		assert.Equal(t, 1.0, out.State.Window.StartTime)
	})

	t.Run("empty window keeps filters", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.RestoreViewInput{Key: "/t/flat.json"})

		require.NoError(t, err)
		assert.True(t, out.Found)
		assert.False(t, out.HasWindow)
		assert.Equal(t, domain.TimeWindow{}, out.State.Window)
		assert.Equal(t, "DRAM", out.State.Location)
	})

	t.Run("unknown trace", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.RestoreViewInput{Key: "/t/b.json"})

		require.NoError(t, err)
		assert.False(t, out.Found)
	})

	t.Run("no key", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.RestoreViewInput{})

		require.NoError(t, err)
		assert.False(t, out.Found)
	})
}

func TestRestoreView_NilStore(t *testing.T) {
	out, err := usecase.NewRestoreView(nil).Execute(context.Background(), usecase.RestoreViewInput{Key: "k"})

	require.NoError(t, err)
	assert.False(t, out.Found)
}

func TestRestoreView_Error(t *testing.T) {
	store := testutil.NewMockViewStateStore()
	store.LoadErr = errors.New("permission denied")

	_, err := usecase.NewRestoreView(store).Execute(context.Background(), usecase.RestoreViewInput{Key: "k"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "restore view")
}

func TestSaveView_Execute(t *testing.T) {
	store := testutil.NewMockViewStateStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := usecase.NewSaveView(store, &testutil.MockClock{NowTime: now})

	err := uc.Execute(context.Background(), usecase.SaveViewInput{
		Key:      "k",
		Where:    "GPU1",
		Location: "DRAM",
		Window:   domain.TimeWindow{StartTime: 1, EndTime: 4},
	})

	require.NoError(t, err)
	got := store.States["k"]
	assert.Equal(t, domain.TimeWindow{StartTime: 1, EndTime: 4}, got.Window)
	assert.Equal(t, "GPU1", got.Where)
	assert.Equal(t, "DRAM", got.Location)
	assert.Equal(t, now, got.SavedAt)
}

func TestSaveView_Skips(t *testing.T) {
	store := testutil.NewMockViewStateStore()
	uc := usecase.NewSaveView(store, nil)

	require.NoError(t, uc.Execute(context.Background(), usecase.SaveViewInput{
		Window: domain.TimeWindow{StartTime: 0, EndTime: 1},
	}))
	assert.Equal(t, 0, store.Saves, "no key, nothing saved")

	require.NoError(t, usecase.NewSaveView(nil, nil).Execute(context.Background(), usecase.SaveViewInput{Key: "k"}))
}

func TestSaveView_Errors(t *testing.T) {
	store := testutil.NewMockViewStateStore()
	uc := usecase.NewSaveView(store, nil)

	err := uc.Execute(context.Background(), usecase.SaveViewInput{
		Key:    "k",
		Window: domain.TimeWindow{StartTime: 2, EndTime: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
	assert.Equal(t, 0, store.Saves)

	store.SaveErr = errors.New("disk full")
	err = uc.Execute(context.Background(), usecase.SaveViewInput{
		Key:    "k",
		Window: domain.TimeWindow{StartTime: 0, EndTime: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
