// Package sensor measures range with an HC-SR04 ultrasonic module: a short
// trigger pulse, then the width of the echo pulse gives the round-trip time
// of flight. Pulse timing uses the wraparound-safe gpio tick clock.
package sensor

import (
	"fmt"
	"time"

	"github.com/sweeney/bin-monitor/internal/gpio"
)

const (
	// EchoDeadlineUS bounds the wait for each echo edge, measured from the
	// moment the trigger line falls. Per the HC-SR04 datasheet the echo
	// pulse for max range is well under 30 ms.
	EchoDeadlineUS = 30000

	// OutOfRangeCM is the sentinel distance reported when the echo times
	// out. It is chosen above any realistic empty threshold so a missing or
	// disconnected sensor reads as an empty bin, never a full one.
	OutOfRangeCM = 100.0

	// usPerCM is the round-trip sound travel time per centimeter.
	usPerCM = 29.1

	triggerSettle = 2 * time.Microsecond
	triggerPulse  = 10 * time.Microsecond
)

// Ranger times echo pulses on a trigger/echo pin pair.
type Ranger struct {
	pins    gpio.Pins
	clock   gpio.Clock
	trigger int
	echo    int
	sleep   func(time.Duration)
}

// New creates a Ranger on the given pins.
func New(pins gpio.Pins, clock gpio.Clock, trigger, echo int) *Ranger {
	return &Ranger{
		pins:    pins,
		clock:   clock,
		trigger: trigger,
		echo:    echo,
		sleep:   time.Sleep,
	}
}

// MeasurePulse fires the trigger and times the echo pulse. It returns the
// pulse width in microseconds and ok=true, or ok=false if either echo edge
// did not arrive within EchoDeadlineUS. A timed-out measurement is a valid
// result, not an error; errors are reserved for pin faults.
func (r *Ranger) MeasurePulse() (widthUS int32, ok bool, err error) {
	if err := r.pins.WriteDigital(r.trigger, false); err != nil {
		return 0, false, fmt.Errorf("trigger low: %w", err)
	}
	r.sleep(triggerSettle)
	if err := r.pins.WriteDigital(r.trigger, true); err != nil {
		return 0, false, fmt.Errorf("trigger high: %w", err)
	}
	r.sleep(triggerPulse)
	if err := r.pins.WriteDigital(r.trigger, false); err != nil {
		return 0, false, fmt.Errorf("trigger low: %w", err)
	}

	start := r.clock.Now()
	end := start
	deadline := start.Add(EchoDeadlineUS)

	// Wait for the rising edge. start tracks the last time the line was
	// still low, so the width measures only the high period.
	for {
		high, err := r.pins.ReadDigital(r.echo)
		if err != nil {
			return 0, false, fmt.Errorf("echo read: %w", err)
		}
		if high {
			break
		}
		now := r.clock.Now()
		start = now
		if gpio.TicksDiff(now, deadline) > 0 {
			return 0, false, nil
		}
	}

	// Wait for the falling edge. end tracks the last time the line was
	// still high.
	for {
		high, err := r.pins.ReadDigital(r.echo)
		if err != nil {
			return 0, false, fmt.Errorf("echo read: %w", err)
		}
		if !high {
			break
		}
		now := r.clock.Now()
		end = now
		if gpio.TicksDiff(now, deadline) > 0 {
			return 0, false, nil
		}
	}

	return gpio.TicksDiff(end, start), true, nil
}

// Distance converts a pulse measurement to centimeters. Timed-out
// measurements map to the OutOfRangeCM sentinel.
func Distance(widthUS int32, ok bool) float64 {
	if !ok {
		return OutOfRangeCM
	}
	return (float64(widthUS) / 2) / usPerCM
}

// Read takes one measurement and returns the distance in centimeters.
func (r *Ranger) Read() (float64, error) {
	width, ok, err := r.MeasurePulse()
	if err != nil {
		return 0, err
	}
	return Distance(width, ok), nil
}
