package tui

import (
	"github.com/runoshun/daisen/internal/axis"
)

// tickSpacing is the minimum number of columns between two tick labels.
const tickSpacing = 12

// axisLine returns a plain line of cols characters with a '|' and a label
// at each tick of ax. Labels that would overlap the previous one are left
// out.
func axisLine(ax *axis.Axis, cols int, cellWidth float64) string {
	line := make([]rune, cols)
	for i := range line {
		line[i] = ' '
	}
	if cols <= 0 || cellWidth <= 0 {
		return string(line)
	}

	left := ax.Status().PixelLeft
	next := 0
	for _, tick := range ax.Ticks(max(cols/tickSpacing, 1)) {
		col := int((tick.Pixel - left) / cellWidth)
		if col < next || col >= cols {
			continue
		}
		text := []rune("|" + tick.Label)
		for i, r := range text {
			if col+i >= cols {
				break
			}
			line[col+i] = r
		}
		next = col + len(text) + 1
	}
	return string(line)
}
