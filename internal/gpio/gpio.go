// Package gpio provides digital pin access and a microsecond tick clock
// with hardware abstraction. The real implementation uses the Linux GPIO
// character device. The fake implementation allows testing without hardware.
package gpio

// Pins reads and writes digital GPIO lines by BCM pin number.
type Pins interface {
	// ReadDigital returns the current level of an input pin.
	ReadDigital(pin int) (bool, error)

	// WriteDigital sets the level of an output pin.
	WriteDigital(pin int, high bool) error

	// Close releases GPIO resources.
	Close() error
}

// Clock provides the microsecond tick source used for pulse timing.
type Clock interface {
	Now() Ticks
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinTrigger = 5  // HC-SR04 trigger
	DefaultPinEcho    = 18 // HC-SR04 echo
	DefaultPinGreen   = 4  // empty indicator
	DefaultPinYellow  = 16 // partial indicator
	DefaultPinRed     = 17 // full indicator
)

// PinConfig holds the five pin assignments for one monitor.
type PinConfig struct {
	Trigger int
	Echo    int
	Green   int
	Yellow  int
	Red     int
}

// DefaultPins returns the default pin assignments.
func DefaultPins() PinConfig {
	return PinConfig{
		Trigger: DefaultPinTrigger,
		Echo:    DefaultPinEcho,
		Green:   DefaultPinGreen,
		Yellow:  DefaultPinYellow,
		Red:     DefaultPinRed,
	}
}
