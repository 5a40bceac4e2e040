package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daisen/internal/domain"
)

// RestoreViewInput contains the parameters for restoring a saved view.
type RestoreViewInput struct {
	Key string // Trace identity (empty = nothing to restore)
}

// RestoreViewOutput contains the saved view of a trace.
// Fields are ordered to minimize memory padding.
type RestoreViewOutput struct {
	State     domain.ViewState
	Found     bool
	HasWindow bool // State.Window is a usable window
}

// RestoreView is the use case for reopening a trace where it was left.
type RestoreView struct {
	store domain.ViewStateStore
}

// NewRestoreView creates a new RestoreView use case. A nil store restores
// nothing.
func NewRestoreView(store domain.ViewStateStore) *RestoreView {
	return &RestoreView{store: store}
}

// Execute loads the saved view. A reversed or empty saved window is
// dropped while the filters are kept.
func (uc *RestoreView) Execute(_ context.Context, in RestoreViewInput) (*RestoreViewOutput, error) {
	out := &RestoreViewOutput{}
	if uc.store == nil || in.Key == "" {
		return out, nil
	}

	state, ok, err := uc.store.Load(in.Key)
	if err != nil {
		return nil, fmt.Errorf("restore view: %w", err)
	}
	if !ok {
		return out, nil
	}

	out.Found = true
	out.State = state
	out.HasWindow = state.Window.Validate() == nil && state.Window.Duration() > 0
	if !out.HasWindow {
		out.State.Window = domain.TimeWindow{}
	}
	return out, nil
}

// SaveViewInput contains the view to remember.
// Fields are ordered to minimize memory padding.
type SaveViewInput struct {
	Key      string            // Trace identity (empty = not saved)
	Where    string            // Location filter of the timeline pane
	Location string            // Component shown in the component pane
	Window   domain.TimeWindow // Committed window
}

// SaveView is the use case for remembering the committed view of a trace.
type SaveView struct {
	store domain.ViewStateStore
	clock domain.Clock
}

// NewSaveView creates a new SaveView use case. A nil store saves nothing.
func NewSaveView(store domain.ViewStateStore, clock domain.Clock) *SaveView {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &SaveView{store: store, clock: clock}
}

// Execute records the view stamped with the current time.
func (uc *SaveView) Execute(_ context.Context, in SaveViewInput) error {
	if uc.store == nil || in.Key == "" {
		return nil
	}
	if err := in.Window.Validate(); err != nil {
		return fmt.Errorf("save view: %w", err)
	}

	err := uc.store.Save(in.Key, domain.ViewState{
		Window:   in.Window,
		Where:    in.Where,
		Location: in.Location,
		SavedAt:  uc.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("save view: %w", err)
	}
	return nil
}
