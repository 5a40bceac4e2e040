package layout

import (
	"fmt"

	"github.com/runoshun/daisen/internal/domain"
)

// PaddingPolicy decides how much of a lane a bar occupies.
// Lanes taller than Threshold use ThickRatio, others ThinRatio.
type PaddingPolicy struct {
	Threshold  float64
	ThickRatio float64
	ThinRatio  float64
}

// DefaultPaddingPolicy returns the 80% / 60% policy with a 10px threshold.
func DefaultPaddingPolicy() PaddingPolicy {
	return PaddingPolicy{
		Threshold:  domain.DefaultPaddingThreshold,
		ThickRatio: domain.DefaultThickRatio,
		ThinRatio:  domain.DefaultThinRatio,
	}
}

// Padded returns the bar height for a lane of the given height.
func (p PaddingPolicy) Padded(laneHeight float64) float64 {
	if laneHeight > p.Threshold {
		return laneHeight * p.ThickRatio
	}
	return laneHeight * p.ThinRatio
}

// Engine assigns a Dim to every task of a forest.
type Engine struct {
	logger        domain.Logger
	scope         string
	padding       PaddingPolicy
	minLaneHeight float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithPadding sets the padding policy.
func WithPadding(p PaddingPolicy) Option {
	return func(e *Engine) { e.padding = p }
}

// WithMinLaneHeight sets the height below which deeper levels are abandoned.
func WithMinLaneHeight(h float64) Option {
	return func(e *Engine) { e.minLaneHeight = h }
}

// WithLogger sets the logger and the scope name used for its messages.
func WithLogger(l domain.Logger, scope string) Option {
	return func(e *Engine) {
		e.logger = l
		e.scope = scope
	}
}

// NewEngine creates an Engine with the default policy.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:        domain.NopLogger{},
		padding:       DefaultPaddingPolicy(),
		minLaneHeight: domain.DefaultMinLaneHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig creates an Engine from the [layout] settings.
func NewEngineFromConfig(cfg domain.LayoutConfig, opts ...Option) *Engine {
	base := []Option{
		WithPadding(PaddingPolicy{
			Threshold:  cfg.PaddingThreshold,
			ThickRatio: cfg.ThickRatio,
			ThinRatio:  cfg.ThinRatio,
		}),
		WithMinLaneHeight(cfg.MinLaneHeight),
	}
	return NewEngine(append(base, opts...)...)
}

// Layout computes the rectangle of every task below root, level by level.
// root receives container as its own Dim.
//
// All sibling groups at one depth share a lane height derived from the
// largest lane count among them, so rows line up across branches. Each
// child is placed using its parent's pixels-per-second rate.
func (e *Engine) Layout(root *domain.Task, container domain.Dim) {
	rootDim := container
	root.Dim = &rootDim

	available := container.Height
	nodes := []*domain.Task{root}
	for depth := 0; len(nodes) > 0; depth++ {
		if available < e.minLaneHeight {
			e.logger.Debug(e.scope, "layout",
				fmt.Sprintf("depth %d halted: %.2fpx available", depth, available))
			clearBelow(nodes)
			return
		}

		consumed, children := e.layoutLevel(nodes, available)
		if len(children) == 0 {
			return
		}
		available = consumed
		nodes = children
	}
}

// layoutLevel places the children of nodes and returns the bar height it
// used together with the children to process next.
func (e *Engine) layoutLevel(nodes []*domain.Task, available float64) (float64, []*domain.Task) {
	maxLane := 0
	var next []*domain.Task
	for _, n := range nodes {
		if len(n.SubTasks) == 0 {
			continue
		}
		if m := AssignLanes(n.SubTasks); m > maxLane {
			maxLane = m
		}
		next = append(next, n.SubTasks...)
	}
	if len(next) == 0 {
		return 0, nil
	}

	laneHeight := available / float64(maxLane+1)
	padded := e.padding.Padded(laneHeight)
	offset := (laneHeight - padded) / 2

	for _, n := range nodes {
		parent := *n.Dim
		span := parent.EndTime - parent.StartTime
		if span <= 0 && len(n.SubTasks) > 0 {
			e.logger.Debug(e.scope, "layout",
				fmt.Sprintf("task %q has zero duration; children collapsed to a point", n.ID))
		}
		for _, c := range n.SubTasks {
			x, width := parent.X, 0.0
			if span > 0 {
				pps := parent.Width / span
				x = (c.StartTime-parent.StartTime)*pps + parent.X
				width = (c.EndTime - c.StartTime) * pps
			}
			c.Dim = &domain.Dim{
				X:         x,
				Y:         laneHeight*float64(c.YIndex) + parent.Y + offset,
				Width:     width,
				Height:    padded,
				StartTime: c.StartTime,
				EndTime:   c.EndTime,
			}
		}
	}
	return padded, next
}

// clearBelow drops stale rectangles of every descendant of nodes so that a
// halted layout does not leave geometry from an earlier pass behind.
func clearBelow(nodes []*domain.Task) {
	for _, n := range nodes {
		Walk(n, func(t *domain.Task) { t.Dim = nil })
	}
}
