package tui

import (
	"math"
	"strings"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/view"
)

// markerRune is drawn for bars narrower than one cell.
const markerRune = '|'

// cell is one terminal character of a canvas.
// A zero ch is bar fill.
type cell struct {
	task *domain.Task
	ch   rune
}

// Canvas rasterizes the layout of one pane into terminal cells.
// Pixel geometry is mapped to cells of cellWidth x cellHeight pixels.
// Fields are ordered to minimize memory padding.
type Canvas struct {
	highlighted map[string]bool
	cells       [][]cell
	selected    string
	result      view.Result
	cellWidth   float64
	cellHeight  float64
	cols        int
	rows        int
}

var _ view.Renderer = (*Canvas)(nil)

// NewCanvas creates an empty canvas with the given cell size in pixels.
func NewCanvas(cellWidth, cellHeight float64) *Canvas {
	if cellWidth <= 0 {
		cellWidth = domain.DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = domain.DefaultCellHeight
	}
	return &Canvas{
		cellWidth:   cellWidth,
		cellHeight:  cellHeight,
		highlighted: make(map[string]bool),
	}
}

// CellSize returns the pixel size of one cell.
func (c *Canvas) CellSize() (width, height float64) {
	return c.cellWidth, c.cellHeight
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Resize changes the canvas size in cells and redraws the last result.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
	c.rasterize()
}

// Draw implements view.Renderer.
func (c *Canvas) Draw(r view.Result) {
	c.result = r
	c.highlighted = make(map[string]bool, len(r.Highlighted))
	for _, id := range r.Highlighted {
		c.highlighted[id] = true
	}
	c.rasterize()
}

// Highlight implements view.Renderer.
func (c *Canvas) Highlight(ids []string) {
	c.highlighted = make(map[string]bool, len(ids))
	for _, id := range ids {
		c.highlighted[id] = true
	}
}

// Select marks the task with id as selected. An empty id clears it.
func (c *Canvas) Select(id string) {
	c.selected = id
}

// Result returns the last drawn result.
func (c *Canvas) Result() view.Result {
	return c.result
}

// TaskAt returns the task drawn at the given cell, or nil.
func (c *Canvas) TaskAt(col, row int) *domain.Task {
	if row < 0 || row >= len(c.cells) || col < 0 || col >= len(c.cells[row]) {
		return nil
	}
	return c.cells[row][col].task
}

func (c *Canvas) rasterize() {
	c.cells = make([][]cell, c.rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, c.cols)
		for col := range c.cells[r] {
			c.cells[r][col].ch = ' '
		}
	}

	region := c.result.Region
	// Tasks arrive sorted by level, so children paint over their parents.
	for _, t := range c.result.Tasks {
		if t.Dim == nil {
			continue
		}
		c0, c1 := cellSpan(t.Dim.X-region.X, t.Dim.Right()-region.X, c.cellWidth, c.cols)
		r0, r1 := cellSpan(t.Dim.Y-region.Y, t.Dim.Bottom()-region.Y, c.cellHeight, c.rows)
		if c0 >= c1 || r0 >= r1 {
			continue
		}

		narrow := t.Dim.Width < c.cellWidth
		label := []rune(barLabel(t))
		for r := r0; r < r1; r++ {
			for col := c0; col < c1; col++ {
				var ch rune
				switch {
				case narrow:
					ch = markerRune
				case r == r0 && col-c0 < len(label) && c1-c0 > 2:
					ch = label[col-c0]
				}
				c.cells[r][col] = cell{task: t, ch: ch}
			}
		}
	}
}

// cellSpan converts the pixel interval [from, to) to a half-open cell range
// clipped to [0, n). An interval narrower than a cell still covers the cell
// it starts in.
func cellSpan(from, to, size float64, n int) (int, int) {
	a := int(math.Floor(from / size))
	b := int(math.Ceil(to / size))
	if b <= a {
		b = a + 1
	}
	return max(a, 0), min(b, n)
}

// barLabel returns the text drawn inside a bar.
func barLabel(t *domain.Task) string {
	if t.What != "" {
		return t.What
	}
	if t.Kind != "" {
		return t.Kind
	}
	return t.ID
}

// Render returns the styled canvas, one line per row.
func (c *Canvas) Render(styles Styles) string {
	lines := make([]string, len(c.cells))
	for r, row := range c.cells {
		var b strings.Builder
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].task == row[start].task {
				end++
			}
			b.WriteString(c.renderRun(styles, row[start:end]))
			start = end
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) renderRun(styles Styles, run []cell) string {
	text := make([]rune, len(run))
	for i, cl := range run {
		text[i] = cl.ch
		if cl.ch == 0 {
			text[i] = ' '
		}
	}
	t := run[0].task
	switch {
	case t == nil:
		return string(text)
	case t.ID == c.selected:
		return styles.BarSelected.Render(string(text))
	default:
		return styles.BarStyle(t.Category(), c.highlighted[t.ID]).Render(string(text))
	}
}

// Plain returns the canvas without styling. Bar fill is drawn as '#'.
func (c *Canvas) Plain() []string {
	lines := make([]string, len(c.cells))
	for r, row := range c.cells {
		text := make([]rune, len(row))
		for i, cl := range row {
			text[i] = cl.ch
			if cl.ch == 0 {
				text[i] = '#'
			}
		}
		lines[r] = string(text)
	}
	return lines
}
