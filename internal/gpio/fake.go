package gpio

import "fmt"

// Write records a single WriteDigital call.
type Write struct {
	Pin  int
	High bool
}

// FakePins is a test double for Pins. Reads come from ReadFunc when set,
// otherwise from the Levels map. Writes are recorded and update Levels.
type FakePins struct {
	// Levels holds the current level of each pin.
	Levels map[int]bool

	// ReadFunc, if set, overrides Levels for reads. Tests use it to drive
	// the echo pin from a fake clock.
	ReadFunc func(pin int) (bool, error)

	// Writes contains all WriteDigital calls in order.
	Writes []Write

	// ReadError, if set, is returned by every ReadDigital call.
	ReadError error

	// WriteErrors maps pins to injected write failures.
	WriteErrors map[int]error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePins creates a FakePins with all pins low.
func NewFakePins() *FakePins {
	return &FakePins{
		Levels:      make(map[int]bool),
		WriteErrors: make(map[int]error),
	}
}

// ReadDigital returns the scripted or stored level for the pin.
func (f *FakePins) ReadDigital(pin int) (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if f.ReadFunc != nil {
		return f.ReadFunc(pin)
	}
	return f.Levels[pin], nil
}

// WriteDigital records the write and updates the pin level.
func (f *FakePins) WriteDigital(pin int, high bool) error {
	if err := f.WriteErrors[pin]; err != nil {
		return fmt.Errorf("write pin %d: %w", pin, err)
	}
	f.Writes = append(f.Writes, Write{Pin: pin, High: high})
	f.Levels[pin] = high
	return nil
}

// Close marks the pins as closed.
func (f *FakePins) Close() error {
	f.Closed = true
	return nil
}

// Level returns the current level of a pin.
func (f *FakePins) Level(pin int) bool {
	return f.Levels[pin]
}

// FakeClock is a deterministic Clock. Every Now call returns the current
// tick value and then advances it by Step microseconds.
type FakeClock struct {
	Current Ticks
	Step    int32
}

// Now returns the current tick value and advances the clock.
func (c *FakeClock) Now() Ticks {
	t := c.Current
	c.Current = c.Current.Add(c.Step)
	return t
}
