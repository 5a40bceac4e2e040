package view

import "github.com/runoshun/daisen/internal/domain"

// DefaultHistoryLimit is the number of windows a History keeps.
const DefaultHistoryLimit = 64

// History is a bounded stack of committed windows. The top entry is the
// current window.
type History struct {
	entries []domain.TimeWindow
	limit   int
}

// NewHistory creates a History keeping at most limit windows.
// A non-positive limit uses DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records w as the current window. Pushing the current window again
// is a no-op.
func (h *History) Push(w domain.TimeWindow) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == w {
		return
	}
	h.entries = append(h.entries, w)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Back drops the current window and returns the one before it.
func (h *History) Back() (domain.TimeWindow, bool) {
	if len(h.entries) < 2 {
		return domain.TimeWindow{}, false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Current returns the current window.
func (h *History) Current() (domain.TimeWindow, bool) {
	if len(h.entries) == 0 {
		return domain.TimeWindow{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of recorded windows.
func (h *History) Len() int {
	return len(h.entries)
}
