package layout

import (
	"sort"

	"github.com/runoshun/daisen/internal/domain"
)

// Visible returns the tasks below root that should be drawn, sorted by
// level so parents paint before their children.
//
// Top-level tasks are always kept. Deeper tasks are dropped when they have
// no Dim or when either side is smaller than minSize pixels.
func Visible(root *domain.Task, minSize float64) []*domain.Task {
	var out []*domain.Task
	Walk(root, func(t *domain.Task) {
		if t.Level == 1 {
			out = append(out, t)
			return
		}
		if t.Dim == nil || t.Dim.Width < minSize || t.Dim.Height < minSize {
			return
		}
		out = append(out, t)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}

// MaxLevel returns the deepest level among tasks.
func MaxLevel(tasks []*domain.Task) int {
	deepest := 0
	for _, t := range tasks {
		if t.Level > deepest {
			deepest = t.Level
		}
	}
	return deepest
}
