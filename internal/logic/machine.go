package logic

import (
	"fmt"
	"time"
)

// Machine is the four-state retraction controller. It owns the current
// state, the last-rain timestamp, and the motor start timestamp; callers
// drive it with one Tick per poll cycle and execute the returned Action.
type Machine struct {
	cfg        Config
	state      State
	lastRain   time.Time // most recent cycle rain was sampled true
	motorStart time.Time // instant the current motor run began

	startTime     time.Time
	counts        TransitionCounts
	lastHeartbeat time.Time
}

// NewMachine creates a controller in the EXTENDED state (line assumed
// deployed and safe at boot). lastRain starts at startTime, so "no rain
// observed yet" counts as dry since boot.
func NewMachine(cfg Config, startTime time.Time) (*Machine, error) {
	if cfg.MotorRunTime <= 0 {
		return nil, fmt.Errorf("motor run time must be positive, got %v", cfg.MotorRunTime)
	}
	if cfg.RetractionDelay <= 0 {
		return nil, fmt.Errorf("retraction delay must be positive, got %v", cfg.RetractionDelay)
	}
	return &Machine{
		cfg:           cfg,
		state:         StateExtended,
		lastRain:      startTime,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}, nil
}

// Tick evaluates one poll cycle. It never blocks and performs at most one
// transition. A true rain sample refreshes lastRain before transitions are
// evaluated, so the dry-wait guard can never see a stale timestamp within
// the same cycle.
func (m *Machine) Tick(rain bool, now time.Time) Action {
	if rain {
		m.lastRain = now
	}

	switch m.state {
	case StateExtended:
		if rain {
			m.state = StateRetracting
			m.motorStart = now
			m.counts.RetractsBegun++
			return ActionBeginRetract
		}

	case StateRetracting:
		if now.Sub(m.motorStart) >= m.cfg.MotorRunTime {
			m.state = StateRetracted
			m.counts.RetractsDone++
			return ActionMotorsDone
		}

	case StateRetracted:
		if !rain && now.Sub(m.lastRain) >= m.cfg.RetractionDelay {
			m.state = StateExtending
			m.motorStart = now
			m.counts.ExtendsBegun++
			return ActionBeginExtend
		}

	case StateExtending:
		// Rain always wins over an in-progress extension. Checked before
		// the completion timer, and the run window restarts from now
		// rather than carrying over elapsed extension time.
		if rain {
			m.state = StateRetracting
			m.motorStart = now
			m.counts.RainOverrides++
			return ActionBeginRetract
		}
		if now.Sub(m.motorStart) >= m.cfg.MotorRunTime {
			m.state = StateExtended
			m.counts.ExtendsDone++
			return ActionMotorsDone
		}
	}

	return ActionNone
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// LastRain returns the timestamp of the most recent true rain sample
// (startTime if rain has never been observed).
func (m *Machine) LastRain() time.Time {
	return m.lastRain
}

// Moving reports whether the motors should currently be driving.
func (m *Machine) Moving() bool {
	return m.state == StateRetracting || m.state == StateExtending
}

// CountsSnapshot returns a copy of the transition counters.
func (m *Machine) CountsSnapshot() TransitionCounts {
	return m.counts
}

// TransitionEvent maps a completed transition to its diagnostic event.
// Returns nil when no transition occurred (from == to).
func TransitionEvent(from, to State, now time.Time) *Event {
	if from == to {
		return nil
	}
	var typ EventType
	switch {
	case from == StateExtending && to == StateRetracting:
		typ = EventRainOverride
	case to == StateRetracting:
		typ = EventRetractBegin
	case to == StateRetracted:
		typ = EventRetracted
	case to == StateExtending:
		typ = EventExtendBegin
	case to == StateExtended:
		typ = EventExtended
	}
	return &Event{Timestamp: now, Type: typ, State: to}
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed, or if interval is <= 0 (disabled).
func (m *Machine) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}

	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.counts,
	}
}
