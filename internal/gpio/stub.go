//go:build !linux

package gpio

import "errors"

// RealPins is not available on non-Linux platforms.
type RealPins struct{}

// NewRealPins returns an error on non-Linux platforms.
func NewRealPins(cfg PinConfig) (*RealPins, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// ReadDigital is not implemented on non-Linux platforms.
func (p *RealPins) ReadDigital(pin int) (bool, error) {
	return false, errors.New("gpio: not supported")
}

// WriteDigital is not implemented on non-Linux platforms.
func (p *RealPins) WriteDigital(pin int, high bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (p *RealPins) Close() error {
	return nil
}
