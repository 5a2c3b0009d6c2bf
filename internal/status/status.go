// Package status provides a thread-safe status tracker for the clothesline
// daemon. It is read by the HTTP handlers and serialized into system events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/clothesline/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs       int64
	MotorRunMs   int64
	DryDelayMs   int64
	HeartbeatMs  int64
	SpeedPercent int
	Broker       string
	HTTPAddr     string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State         logic.State
	Raining       bool
	LastRain      time.Time
	Counts        logic.TransitionCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// DrySince returns how long it has been since rain was last detected
// (since start if it never rained).
func (s Snapshot) DrySince() time.Duration {
	if s.Raining {
		return 0
	}
	return s.Now.Sub(s.LastRain)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// LastRain starts at startTime, mirroring the state machine.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.StateExtended,
			LastRain:  startTime,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets line state, current rain sample, last rain time, and
// transition counts. Called from the run loop on every tick.
func (t *Tracker) Update(state logic.State, raining bool, lastRain time.Time, counts logic.TransitionCounts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Raining = raining
	t.snap.LastRain = lastRain
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
