// Package gpio provides pin I/O for the clothesline controller with
// hardware abstraction. The real implementation uses the Linux GPIO
// character device plus sysfs PWM for the motor speed channels. The fake
// implementation allows testing without hardware.
package gpio

// Sensor reads the rain input pin.
type Sensor interface {
	// Read returns whether rain is currently detected. A single true
	// sample is meaningful on its own; no smoothing happens here.
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Outputs drives the controller's output pins.
type Outputs interface {
	// SetMotors sets the direction pins of both motor drivers in one
	// call: forward and reverse for driver A, then driver B. The speed
	// duty is fixed at initialization and is not part of this call.
	SetMotors(aFwd, aRev, bFwd, bRev bool) error

	// SetIndicator drives the status lamp pin.
	SetIndicator(on bool) error

	// Close drives all direction pins low and releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinRain      = 17
	DefaultPinMotorAFwd = 5
	DefaultPinMotorARev = 6
	DefaultPinMotorBFwd = 13
	DefaultPinMotorBRev = 19
	DefaultPinLamp      = 21
)

// Default sysfs PWM layout: both speed channels on pwmchip0 (the Pi's
// hardware PWM channels on GPIO 18/19 with the pwm-2chan overlay).
const (
	DefaultPWMChip     = 0
	DefaultPWMChannelA = 0
	DefaultPWMChannelB = 1
)

// OutputPins names the output pin assignment for NewRealOutputs.
type OutputPins struct {
	MotorAFwd int
	MotorARev int
	MotorBFwd int
	MotorBRev int
	Lamp      int
}
