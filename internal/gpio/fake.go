package gpio

import "errors"

// FakeSensor is a test double that returns scripted rain samples.
type FakeSensor struct {
	// Samples contains scripted rain values to return.
	// Each call to Read() consumes the next sample.
	Samples []bool

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeSensor creates a FakeSensor with the given samples.
func NewFakeSensor(samples []bool) *FakeSensor {
	return &FakeSensor{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeSensor) Read() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the sensor to the beginning of samples.
func (f *FakeSensor) Reset() {
	f.index = 0
	f.Closed = false
}

// MotorWrite records one SetMotors call.
type MotorWrite struct {
	AFwd, ARev, BFwd, BRev bool
}

// FakeOutputs records output pin writes for test assertions.
type FakeOutputs struct {
	// MotorWrites contains every SetMotors call in order.
	MotorWrites []MotorWrite

	// IndicatorWrites contains every SetIndicator call in order.
	IndicatorWrites []bool

	// Closed tracks if Close was called.
	Closed bool

	// WriteError, if set, will be returned by SetMotors and SetIndicator.
	WriteError error
}

// NewFakeOutputs creates a FakeOutputs for testing.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{}
}

// SetMotors records the direction pin write.
func (f *FakeOutputs) SetMotors(aFwd, aRev, bFwd, bRev bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.MotorWrites = append(f.MotorWrites, MotorWrite{aFwd, aRev, bFwd, bRev})
	return nil
}

// SetIndicator records the lamp write.
func (f *FakeOutputs) SetIndicator(on bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.IndicatorWrites = append(f.IndicatorWrites, on)
	return nil
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.Closed = true
	return nil
}

// LastMotorWrite returns the most recent SetMotors call, or a zero write
// (all pins low) if none happened.
func (f *FakeOutputs) LastMotorWrite() MotorWrite {
	if len(f.MotorWrites) == 0 {
		return MotorWrite{}
	}
	return f.MotorWrites[len(f.MotorWrites)-1]
}

// LastIndicator returns the most recent SetIndicator value, or false if
// none happened.
func (f *FakeOutputs) LastIndicator() bool {
	if len(f.IndicatorWrites) == 0 {
		return false
	}
	return f.IndicatorWrites[len(f.IndicatorWrites)-1]
}
