package axis

import (
	"testing"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAxis_ScaleUnscale(t *testing.T) {
	a := New(0, 10, 100, 300)

	assert.InDelta(t, 100, a.Scale(0), 1e-9)
	assert.InDelta(t, 300, a.Scale(10), 1e-9)
	assert.InDelta(t, 150, a.Scale(2.5), 1e-9)
	assert.InDelta(t, 2.5, a.Unscale(150), 1e-9)

	for _, tm := range []float64{-3, 0, 1.25, 7, 12} {
		assert.InDelta(t, tm, a.Unscale(a.Scale(tm)), 1e-9)
	}
}

func TestAxis_SetRangeAndResize(t *testing.T) {
	a := New(0, 1, 0, 100)

	a.SetRange(10, 20)
	assert.InDelta(t, 50, a.Scale(15), 1e-9)

	a.Resize(0, 200)
	assert.InDelta(t, 100, a.Scale(15), 1e-9)
	assert.Equal(t, domain.AxisStatus{StartTime: 10, EndTime: 20, PixelLeft: 0, PixelRight: 200}, a.Status())
	assert.Equal(t, domain.TimeWindow{StartTime: 10, EndTime: 20}, a.Window())
}

func TestAxis_Degenerate(t *testing.T) {
	a := New(5, 5, 10, 110)
	assert.Equal(t, 10.0, a.Scale(7))

	b := New(0, 10, 50, 50)
	assert.Equal(t, 0.0, b.Unscale(80))
}

func TestAxis_StatusIsSnapshot(t *testing.T) {
	a := New(0, 10, 0, 100)
	s := a.Status()
	a.SetRange(5, 6)
	assert.Equal(t, 0.0, s.StartTime)
	assert.Equal(t, 10.0, s.EndTime)
}
