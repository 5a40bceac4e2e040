package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/view"
)

func barTask(id, what string, x, y, w, h float64) *domain.Task {
	return &domain.Task{
		ID:   id,
		What: what,
		Kind: "req",
		Dim:  &domain.Dim{X: x, Y: y, Width: w, Height: h},
	}
}

func TestCanvas_DrawPlain(t *testing.T) {
	c := NewCanvas(8, 16)
	c.Resize(10, 2)

	wide := barTask("a", "load", 0, 32, 80, 16)
	narrow := barTask("b", "", 40, 48, 2, 16)
	c.Draw(view.Result{
		Region: domain.Rect{X: 0, Y: 32, Width: 80, Height: 32},
		Tasks:  []*domain.Task{wide, narrow},
	})

	assert.Equal(t, []string{
		"load######",
		"     |    ",
	}, c.Plain())
	assert.Same(t, wide, c.TaskAt(0, 0))
	assert.Same(t, wide, c.TaskAt(9, 0))
	assert.Same(t, narrow, c.TaskAt(5, 1))
	assert.Nil(t, c.TaskAt(4, 1))
	assert.Nil(t, c.TaskAt(10, 0), "out of bounds")
	assert.Nil(t, c.TaskAt(0, -1), "out of bounds")
}

func TestCanvas_ChildPaintsOverParent(t *testing.T) {
	c := NewCanvas(8, 16)
	c.Resize(4, 1)

	parent := barTask("p", "outer", 0, 0, 32, 16)
	child := barTask("c", "", 8, 0, 16, 16)
	c.Draw(view.Result{
		Region: domain.Rect{Width: 32, Height: 16},
		Tasks:  []*domain.Task{parent, child},
	})

	assert.Same(t, parent, c.TaskAt(0, 0))
	assert.Same(t, child, c.TaskAt(1, 0))
	assert.Same(t, child, c.TaskAt(2, 0))
	assert.Same(t, parent, c.TaskAt(3, 0))
	// Two-cell bars have no room for a label.
	assert.Equal(t, []string{"o##e"}, c.Plain())
}

func TestCanvas_SkipsTasksWithoutDim(t *testing.T) {
	c := NewCanvas(8, 16)
	c.Resize(2, 1)
	c.Draw(view.Result{
		Region: domain.Rect{Width: 16, Height: 16},
		Tasks:  []*domain.Task{{ID: "x"}},
	})

	assert.Equal(t, []string{"  "}, c.Plain())
}

func TestCanvas_ResizeRedraws(t *testing.T) {
	c := NewCanvas(8, 16)
	c.Draw(view.Result{
		Region: domain.Rect{Width: 32, Height: 16},
		Tasks:  []*domain.Task{barTask("a", "", 0, 0, 32, 16)},
	})
	assert.Empty(t, c.Plain(), "nothing to draw before the first resize")

	c.Resize(4, 1)
	require.Len(t, c.Plain(), 1)
	assert.Equal(t, "req#", c.Plain()[0], "kind is the label when what is empty")

	cols, rows := c.Size()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 1, rows)
}

func TestCanvas_DefaultCellSize(t *testing.T) {
	c := NewCanvas(0, -1)
	w, h := c.CellSize()
	assert.Equal(t, float64(domain.DefaultCellWidth), w)
	assert.Equal(t, float64(domain.DefaultCellHeight), h)
}

func TestCanvas_Render(t *testing.T) {
	c := NewCanvas(8, 16)
	c.Resize(10, 1)
	c.Draw(view.Result{
		Region:      domain.Rect{Width: 80, Height: 16},
		Tasks:       []*domain.Task{barTask("a", "load", 0, 0, 40, 16)},
		Highlighted: []string{"a"},
	})
	c.Select("a")

	out := c.Render(DefaultStyles())
	assert.Contains(t, out, "load")

	c.Select("")
	c.Highlight(nil)
	assert.Contains(t, c.Render(DefaultStyles()), "load")
	assert.Equal(t, "a", c.Result().Tasks[0].ID)
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		wantA    int
		wantB    int
	}{
		{"exact cell", 0, 8, 0, 1},
		{"inside one cell", 4, 5, 0, 1},
		{"zero width", 12, 12, 1, 2},
		{"clipped left", -16, 16, 0, 2},
		{"clipped right", 72, 100, 9, 10},
		{"past the end", 90, 95, 11, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := cellSpan(tt.from, tt.to, 8, 10)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}

func TestBarLabel(t *testing.T) {
	assert.Equal(t, "read", barLabel(&domain.Task{ID: "1", Kind: "req", What: "read"}))
	assert.Equal(t, "req", barLabel(&domain.Task{ID: "1", Kind: "req"}))
	assert.Equal(t, "1", barLabel(&domain.Task{ID: "1"}))
}
