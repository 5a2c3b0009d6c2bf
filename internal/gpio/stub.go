//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealSensor is not available on non-Linux platforms.
type RealSensor struct{}

// NewRealSensor returns an error on non-Linux platforms.
func NewRealSensor(pin int) (*RealSensor, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (s *RealSensor) Read() (bool, error) {
	return false, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (s *RealSensor) Close() error {
	return nil
}

// RealOutputs is not available on non-Linux platforms.
type RealOutputs struct{}

// NewRealOutputs returns an error on non-Linux platforms.
func NewRealOutputs(pins OutputPins, pwmChip, pwmChanA, pwmChanB, dutyPercent int) (*RealOutputs, error) {
	return nil, errUnsupported
}

// SetMotors is not implemented on non-Linux platforms.
func (o *RealOutputs) SetMotors(aFwd, aRev, bFwd, bRev bool) error {
	return errUnsupported
}

// SetIndicator is not implemented on non-Linux platforms.
func (o *RealOutputs) SetIndicator(on bool) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (o *RealOutputs) Close() error {
	return nil
}
