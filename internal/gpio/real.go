//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealSensor reads the rain pin from actual hardware using the Linux GPIO
// character device.
type RealSensor struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealSensor creates a rain sensor reader for actual Raspberry Pi
// hardware. The pin is requested as input with pull-down, so a comparator
// board wired active-high reads false when dry.
func NewRealSensor(pin int) (*RealSensor, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request rain pin %d: %w", pin, err)
	}

	return &RealSensor{chip: chip, line: line}, nil
}

// Read returns whether the rain pin is currently high.
func (s *RealSensor) Read() (bool, error) {
	raw, err := s.line.Value()
	if err != nil {
		return false, fmt.Errorf("read rain pin: %w", err)
	}
	return raw != 0, nil
}

// Close releases the rain pin. The pin is reconfigured to input with
// pull-down (matching Pi boot defaults) before closing so external sensor
// boards cannot hold it in an unexpected state across a reboot.
func (s *RealSensor) Close() error {
	var errs []error

	if s.line != nil {
		if err := s.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure rain pin: %w", err))
		}
		if err := s.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rain pin: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealOutputs drives the motor direction pins, the status lamp, and the
// two fixed-duty PWM speed channels on actual hardware.
type RealOutputs struct {
	chip  *gpiocdev.Chip
	lines map[string]*gpiocdev.Line // keyed for error messages
	aFwd  *gpiocdev.Line
	aRev  *gpiocdev.Line
	bFwd  *gpiocdev.Line
	bRev  *gpiocdev.Line
	lamp  *gpiocdev.Line
	pwmA  *pwmChannel
	pwmB  *pwmChannel
}

// NewRealOutputs requests the five output lines (all initially low) and
// configures both PWM speed channels at the given duty percent. The duty
// is set once here and never varied at runtime; direction pins alone
// start and stop the motors.
func NewRealOutputs(pins OutputPins, pwmChip, pwmChanA, pwmChanB, dutyPercent int) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	o := &RealOutputs{chip: chip, lines: make(map[string]*gpiocdev.Line)}

	request := func(name string, pin int) (*gpiocdev.Line, error) {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			o.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", name, pin, err)
		}
		o.lines[name] = line
		return line, nil
	}

	if o.aFwd, err = request("motor A forward", pins.MotorAFwd); err != nil {
		return nil, err
	}
	if o.aRev, err = request("motor A reverse", pins.MotorARev); err != nil {
		return nil, err
	}
	if o.bFwd, err = request("motor B forward", pins.MotorBFwd); err != nil {
		return nil, err
	}
	if o.bRev, err = request("motor B reverse", pins.MotorBRev); err != nil {
		return nil, err
	}
	if o.lamp, err = request("lamp", pins.Lamp); err != nil {
		return nil, err
	}

	if o.pwmA, err = openPWM(pwmChip, pwmChanA, dutyPercent); err != nil {
		o.Close()
		return nil, fmt.Errorf("pwm channel A: %w", err)
	}
	if o.pwmB, err = openPWM(pwmChip, pwmChanB, dutyPercent); err != nil {
		o.Close()
		return nil, fmt.Errorf("pwm channel B: %w", err)
	}

	return o, nil
}

// SetMotors writes all four direction pins.
func (o *RealOutputs) SetMotors(aFwd, aRev, bFwd, bRev bool) error {
	writes := []struct {
		name string
		line *gpiocdev.Line
		on   bool
	}{
		{"motor A forward", o.aFwd, aFwd},
		{"motor A reverse", o.aRev, aRev},
		{"motor B forward", o.bFwd, bFwd},
		{"motor B reverse", o.bRev, bRev},
	}
	for _, w := range writes {
		if err := w.line.SetValue(boolToValue(w.on)); err != nil {
			return fmt.Errorf("set %s: %w", w.name, err)
		}
	}
	return nil
}

// SetIndicator writes the lamp pin.
func (o *RealOutputs) SetIndicator(on bool) error {
	if err := o.lamp.SetValue(boolToValue(on)); err != nil {
		return fmt.Errorf("set lamp: %w", err)
	}
	return nil
}

// Close drives every output low, disables the PWM channels, and
// reconfigures the pins to input with pull-down to match Pi boot defaults.
func (o *RealOutputs) Close() error {
	var errs []error

	for name, line := range o.lines {
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("lower %s: %w", name, err))
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s: %w", name, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	if o.pwmA != nil {
		if err := o.pwmA.close(); err != nil {
			errs = append(errs, fmt.Errorf("close pwm A: %w", err))
		}
	}
	if o.pwmB != nil {
		if err := o.pwmB.close(); err != nil {
			errs = append(errs, fmt.Errorf("close pwm B: %w", err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func boolToValue(on bool) int {
	if on {
		return 1
	}
	return 0
}
