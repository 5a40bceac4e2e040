package view

import (
	"testing"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func win(start, end float64) domain.TimeWindow {
	return domain.TimeWindow{StartTime: start, EndTime: end}
}

func TestHistory_PushBack(t *testing.T) {
	h := NewHistory(0)
	_, ok := h.Current()
	assert.False(t, ok)

	h.Push(win(0, 10))
	h.Push(win(0, 10))
	h.Push(win(2, 4))
	assert.Equal(t, 2, h.Len(), "duplicate of the current window is skipped")

	w, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, win(0, 10), w)

	_, ok = h.Back()
	assert.False(t, ok)
	cur, _ := h.Current()
	assert.Equal(t, win(0, 10), cur)
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(win(float64(i), float64(i+1)))
	}

	assert.Equal(t, 3, h.Len())
	w, _ := h.Back()
	assert.Equal(t, win(3, 4), w)
	w, _ = h.Back()
	assert.Equal(t, win(2, 3), w)
}
