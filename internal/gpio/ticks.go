package gpio

import "time"

// Ticks is a wrapping 32-bit microsecond timestamp. Pulse timing must keep
// working across wraparound (~71 minutes), so differences are always taken
// with TicksDiff, never raw subtraction.
type Ticks uint32

// Add returns the tick value us microseconds after t, wrapping as needed.
func (t Ticks) Add(us int32) Ticks {
	return t + Ticks(us)
}

// TicksDiff returns a-b in microseconds as a signed value. The result is
// correct for any pair of ticks less than 2^31 µs apart, regardless of
// wraparound.
func TicksDiff(a, b Ticks) int32 {
	return int32(a - b)
}

// SystemClock derives microsecond ticks from the monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock anchored at the current time.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the current tick value. The uint32 truncation is what makes
// the wraparound behavior real rather than theoretical.
func (c *SystemClock) Now() Ticks {
	return Ticks(time.Since(c.start).Microseconds())
}
