package led

import (
	"errors"
	"testing"

	"github.com/sweeney/bin-monitor/internal/gpio"
	"github.com/sweeney/bin-monitor/internal/logic"
)

const (
	pinGreen  = 4
	pinYellow = 16
	pinRed    = 17
)

func newTestDriver() (*Driver, *gpio.FakePins) {
	pins := gpio.NewFakePins()
	return New(pins, pinGreen, pinYellow, pinRed), pins
}

func assertLevels(t *testing.T, pins *gpio.FakePins, green, yellow, red bool) {
	t.Helper()
	if pins.Level(pinGreen) != green {
		t.Errorf("green: got %v, want %v", pins.Level(pinGreen), green)
	}
	if pins.Level(pinYellow) != yellow {
		t.Errorf("yellow: got %v, want %v", pins.Level(pinYellow), yellow)
	}
	if pins.Level(pinRed) != red {
		t.Errorf("red: got %v, want %v", pins.Level(pinRed), red)
	}
}

func TestSetEmpty(t *testing.T) {
	d, pins := newTestDriver()
	if err := d.Set(logic.FillEmpty); err != nil {
		t.Fatalf("set: %v", err)
	}
	assertLevels(t, pins, true, false, false)
}

func TestSetPartial(t *testing.T) {
	d, pins := newTestDriver()
	if err := d.Set(logic.FillPartial); err != nil {
		t.Fatalf("set: %v", err)
	}
	assertLevels(t, pins, false, true, false)
}

func TestSetFull(t *testing.T) {
	d, pins := newTestDriver()
	if err := d.Set(logic.FillFull); err != nil {
		t.Fatalf("set: %v", err)
	}
	assertLevels(t, pins, false, false, true)
}

func TestSetTransitionsStayExclusive(t *testing.T) {
	d, pins := newTestDriver()

	states := []logic.FillState{
		logic.FillEmpty, logic.FillFull, logic.FillPartial,
		logic.FillFull, logic.FillEmpty,
	}
	for _, s := range states {
		if err := d.Set(s); err != nil {
			t.Fatalf("set %s: %v", s, err)
		}
		lit := 0
		for _, pin := range []int{pinGreen, pinYellow, pinRed} {
			if pins.Level(pin) {
				lit++
			}
		}
		if lit != 1 {
			t.Errorf("state %s: %d LEDs lit, want exactly 1", s, lit)
		}
	}
}

func TestSetWriteFailureContinues(t *testing.T) {
	d, pins := newTestDriver()
	pins.WriteErrors[pinGreen] = errors.New("gpio fault")

	err := d.Set(logic.FillFull)
	if err == nil {
		t.Error("expected error from failed green write")
	}

	// The other two pins must still have been written.
	if !pins.Level(pinRed) {
		t.Error("red should be lit despite green write failure")
	}
	if pins.Level(pinYellow) {
		t.Error("yellow should be cleared despite green write failure")
	}
}
