package motor

import (
	"errors"
	"testing"

	"github.com/sweeney/clothesline/internal/gpio"
)

func TestDriveRetract(t *testing.T) {
	out := gpio.NewFakeOutputs()
	a := New(out)

	if err := a.DriveRetract(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := gpio.MotorWrite{AFwd: false, ARev: true, BFwd: false, BRev: true}
	if got := out.LastMotorWrite(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDriveExtend(t *testing.T) {
	out := gpio.NewFakeOutputs()
	a := New(out)

	if err := a.DriveExtend(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := gpio.MotorWrite{AFwd: true, ARev: false, BFwd: true, BRev: false}
	if got := out.LastMotorWrite(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestStopDropsAllPins(t *testing.T) {
	out := gpio.NewFakeOutputs()
	a := New(out)

	a.DriveRetract()
	if err := a.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := out.LastMotorWrite(); got != (gpio.MotorWrite{}) {
		t.Errorf("expected all pins low, got %+v", got)
	}
}

// Both motors always get mirrored commands: forward on one never pairs
// with reverse on the other.
func TestMotorsMoveInLockStep(t *testing.T) {
	out := gpio.NewFakeOutputs()
	a := New(out)

	a.DriveRetract()
	a.DriveExtend()
	a.Stop()

	for i, w := range out.MotorWrites {
		if w.AFwd != w.BFwd || w.ARev != w.BRev {
			t.Errorf("write %d: motors not in lock-step: %+v", i, w)
		}
		if w.AFwd && w.ARev {
			t.Errorf("write %d: forward and reverse both high: %+v", i, w)
		}
	}
}

func TestWriteErrorPropagates(t *testing.T) {
	out := gpio.NewFakeOutputs()
	out.WriteError = errors.New("simulated error")
	a := New(out)

	if err := a.DriveRetract(); err == nil {
		t.Error("expected DriveRetract error")
	}
	if err := a.DriveExtend(); err == nil {
		t.Error("expected DriveExtend error")
	}
	if err := a.Stop(); err == nil {
		t.Error("expected Stop error")
	}
}
