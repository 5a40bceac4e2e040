package gesture

import (
	"time"

	"github.com/runoshun/daisen/internal/domain"
)

// Debouncer tracks a single pending settle deadline.
//
// Every Touch invalidates the previous token, so a timer scheduled for an
// earlier touch can never fire after a newer one. The host schedules a
// timer for each token returned by NextSchedule and calls Fire when it
// expires.
type Debouncer struct {
	clock     domain.Clock
	deadline  time.Time
	delay     time.Duration
	token     uint64
	scheduled uint64
	armed     bool
}

// NewDebouncer creates a Debouncer with the given settle delay.
func NewDebouncer(delay time.Duration, clock domain.Clock) *Debouncer {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Debouncer{delay: delay, clock: clock}
}

// Touch clears any pending deadline and arms a new one.
func (d *Debouncer) Touch() uint64 {
	d.token++
	d.armed = true
	d.deadline = d.clock.Now().Add(d.delay)
	return d.token
}

// Cancel disarms the pending deadline.
func (d *Debouncer) Cancel() {
	d.token++
	d.armed = false
}

// Armed reports whether a deadline is pending.
func (d *Debouncer) Armed() bool {
	return d.armed
}

// Delay returns the settle delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Deadline returns the pending deadline; ok is false when disarmed.
func (d *Debouncer) Deadline() (time.Time, bool) {
	return d.deadline, d.armed
}

// NextSchedule returns the current token if it is armed and has not been
// handed out yet.
func (d *Debouncer) NextSchedule() (uint64, bool) {
	if !d.armed || d.scheduled == d.token {
		return 0, false
	}
	d.scheduled = d.token
	return d.token, true
}

// Fire disarms and returns true if token is current and its deadline has
// passed. Stale or early tokens return false.
func (d *Debouncer) Fire(token uint64) bool {
	if !d.armed || token != d.token {
		return false
	}
	if d.clock.Now().Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}

// Pending reports whether token is the armed token.
func (d *Debouncer) Pending(token uint64) bool {
	return d.armed && token == d.token
}

// Remaining returns the time left until the deadline, or zero.
func (d *Debouncer) Remaining() time.Duration {
	if !d.armed {
		return 0
	}
	if r := d.deadline.Sub(d.clock.Now()); r > 0 {
		return r
	}
	return 0
}
