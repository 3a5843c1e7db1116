//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPins drives actual hardware through the Linux GPIO character device.
// The echo pin is requested as input with pull-down; the trigger and LED
// pins are requested as outputs driven low.
type RealPins struct {
	chip  *gpiocdev.Chip
	lines map[int]*gpiocdev.Line
}

// NewRealPins opens gpiochip0 and requests the five monitor lines.
func NewRealPins(cfg PinConfig) (*RealPins, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	p := &RealPins{chip: chip, lines: make(map[int]*gpiocdev.Line)}

	echo, err := chip.RequestLine(cfg.Echo, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("request echo pin %d: %w", cfg.Echo, err)
	}
	p.lines[cfg.Echo] = echo

	outputs := []struct {
		name string
		pin  int
	}{
		{"trigger", cfg.Trigger},
		{"green", cfg.Green},
		{"yellow", cfg.Yellow},
		{"red", cfg.Red},
	}
	for _, out := range outputs {
		line, err := chip.RequestLine(out.pin, gpiocdev.AsOutput(0))
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", out.name, out.pin, err)
		}
		p.lines[out.pin] = line
	}

	return p, nil
}

// ReadDigital returns the level of the given pin.
func (p *RealPins) ReadDigital(pin int) (bool, error) {
	line, ok := p.lines[pin]
	if !ok {
		return false, fmt.Errorf("pin %d not requested", pin)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", pin, err)
	}
	return v != 0, nil
}

// WriteDigital sets the level of the given pin.
func (p *RealPins) WriteDigital(pin int, high bool) error {
	line, ok := p.lines[pin]
	if !ok {
		return fmt.Errorf("pin %d not requested", pin)
	}
	v := 0
	if high {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("write pin %d: %w", pin, err)
	}
	return nil
}

// Close releases all requested lines and the chip.
// Pins are reconfigured to input with pull-down (matching Pi boot defaults)
// before closing so LEDs do not stay lit after shutdown.
func (p *RealPins) Close() error {
	var errs []error

	for pin, line := range p.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", pin, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", pin, err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
