package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tick is an axis label position.
type Tick struct {
	Label string
	Time  float64
	Pixel float64
}

// Ticks returns about n evenly spaced ticks at 1, 2 or 5 x 10^k seconds
// inside the visible window.
func (a *Axis) Ticks(n int) []Tick {
	if n < 1 || a.end <= a.start {
		return nil
	}
	step := niceStep((a.end - a.start) / float64(n))
	first := math.Ceil(a.start/step) * step

	var ticks []Tick
	for i := 0; ; i++ {
		t := first + float64(i)*step
		if t > a.end+step*1e-9 {
			break
		}
		ticks = append(ticks, Tick{
			Time:  t,
			Pixel: a.Scale(t),
			Label: FormatTime(t),
		})
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	switch f := raw / base; {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

var units = []struct {
	suffix string
	scale  float64
}{
	{"s", 1},
	{"ms", 1e-3},
	{"us", 1e-6},
	{"ns", 1e-9},
}

// FormatTime renders seconds with the largest unit that keeps the value at
// or above one, e.g. 0.0025 -> "2.5ms".
func FormatTime(seconds float64) string {
	if seconds == 0 {
		return "0"
	}
	abs := math.Abs(seconds)
	for _, u := range units {
		if abs >= u.scale || u.suffix == "ns" {
			return trimFloat(seconds/u.scale) + u.suffix
		}
	}
	return trimFloat(seconds) + "s"
}

// trimFloat prints v with at most three decimals and no trailing zeros.
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatWindow renders a window as "start - end (duration)".
func FormatWindow(start, end float64) string {
	return fmt.Sprintf("%s - %s (%s)", FormatTime(start), FormatTime(end), FormatTime(end-start))
}
