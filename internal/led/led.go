// Package led drives the three-way fill indicator. Exactly one LED is lit
// for any fill state: green for empty, yellow for partial, red for full.
package led

import (
	"fmt"
	"log"

	"github.com/sweeney/bin-monitor/internal/gpio"
	"github.com/sweeney/bin-monitor/internal/logic"
)

// Driver writes the indicator pins for a fill state.
type Driver struct {
	pins   gpio.Pins
	green  int
	yellow int
	red    int
}

// New creates a Driver on the given pins.
func New(pins gpio.Pins, green, yellow, red int) *Driver {
	return &Driver{pins: pins, green: green, yellow: yellow, red: red}
}

// Set lights the LED for the given state and clears the other two. All
// three pins are always written; a failed write is logged and the remaining
// writes still happen, so a single bad pin cannot leave two LEDs lit or
// abort the monitor loop.
func (d *Driver) Set(state logic.FillState) error {
	writes := []struct {
		name string
		pin  int
		on   bool
	}{
		{"green", d.green, state == logic.FillEmpty},
		{"yellow", d.yellow, state == logic.FillPartial},
		{"red", d.red, state == logic.FillFull},
	}

	var firstErr error
	for _, w := range writes {
		if err := d.pins.WriteDigital(w.pin, w.on); err != nil {
			log.Printf("led: %s write failed: %v", w.name, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("set %s led: %w", w.name, err)
			}
		}
	}
	return firstErr
}
