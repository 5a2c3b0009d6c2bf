// Package indicator derives the status lamp level purely from the current
// state and time. It holds no state of its own.
package indicator

import (
	"time"

	"github.com/sweeney/clothesline/internal/gpio"
	"github.com/sweeney/clothesline/internal/logic"
)

// blinkHalfPeriod is how long the lamp stays in each phase while the
// motors are running.
const blinkHalfPeriod = 200 * time.Millisecond

// Level returns the lamp level for the given state at the given time.
// EXTENDED is steady on, RETRACTED steady off, and both moving states
// blink with a 200ms half-period derived from the wall clock, so the
// phase is stable across calls.
func Level(state logic.State, now time.Time) bool {
	switch state {
	case logic.StateExtended:
		return true
	case logic.StateRetracted:
		return false
	default: // RETRACTING, EXTENDING
		return (now.UnixMilli()/int64(blinkHalfPeriod/time.Millisecond))%2 == 0
	}
}

// Lamp writes the derived level to the status pin.
type Lamp struct {
	out gpio.Outputs
}

// NewLamp creates a Lamp over the given outputs.
func NewLamp(out gpio.Outputs) *Lamp {
	return &Lamp{out: out}
}

// Render drives the pin for the given state and time.
func (l *Lamp) Render(state logic.State, now time.Time) error {
	return l.out.SetIndicator(Level(state, now))
}
