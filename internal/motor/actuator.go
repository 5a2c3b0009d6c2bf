// Package motor translates logical line intents (retract, extend, stop)
// into direction pin writes on the two motor drivers. Both motors always
// receive identical mirrored commands — they are one actuator split across
// two physical drivers. Speed is a fixed PWM duty configured at startup
// and never touched here.
package motor

import "github.com/sweeney/clothesline/internal/gpio"

// Actuator drives the two line motors in lock-step through gpio.Outputs.
// It has no feedback path: a stalled, jammed, or disconnected motor is
// indistinguishable from a running one.
type Actuator struct {
	out gpio.Outputs
}

// New creates an Actuator over the given outputs.
func New(out gpio.Outputs) *Actuator {
	return &Actuator{out: out}
}

// DriveRetract starts both motors pulling the line toward the stowed
// position: reverse pin high, forward pin low, on both drivers.
func (a *Actuator) DriveRetract() error {
	return a.out.SetMotors(false, true, false, true)
}

// DriveExtend starts both motors deploying the line: forward pin high,
// reverse pin low, on both drivers.
func (a *Actuator) DriveExtend() error {
	return a.out.SetMotors(true, false, true, false)
}

// Stop drives all four direction pins low regardless of prior state.
// Whether that coasts or brakes depends on the driver board wiring.
func (a *Actuator) Stop() error {
	return a.out.SetMotors(false, false, false, false)
}
