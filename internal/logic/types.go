// Package logic contains pure control logic for the clothesline retraction
// state machine. This package has NO external dependencies (no GPIO, MQTT,
// OS, or time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// State represents the position/motion state of the clothesline.
type State string

const (
	StateExtended   State = "EXTENDED"
	StateRetracting State = "RETRACTING"
	StateRetracted  State = "RETRACTED"
	StateExtending  State = "EXTENDING"
)

// Action is the motor intent decided by a single Tick.
type Action string

const (
	// ActionNone means no transition occurred; motors keep doing whatever
	// they were doing.
	ActionNone Action = "NONE"
	// ActionBeginRetract starts both motors in the retract direction.
	ActionBeginRetract Action = "BEGIN_RETRACT"
	// ActionBeginExtend starts both motors in the extend direction.
	ActionBeginExtend Action = "BEGIN_EXTEND"
	// ActionMotorsDone stops both motors; the traversal window elapsed.
	ActionMotorsDone Action = "MOTORS_DONE"
)

// EventType identifies a state transition for the diagnostic sink.
type EventType string

const (
	EventRetractBegin EventType = "RETRACT_BEGIN"
	EventRetracted    EventType = "RETRACTED"
	EventExtendBegin  EventType = "EXTEND_BEGIN"
	EventExtended     EventType = "EXTENDED"
	// EventRainOverride is a retraction begun by rain pre-empting an
	// in-progress extension.
	EventRainOverride EventType = "RAIN_OVERRIDE"
)

// Event represents a state transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State // state after the transition
}

// Config holds the two timing constants of the controller.
// Both must be positive.
type Config struct {
	// MotorRunTime is the fixed duration assumed sufficient for one full
	// traversal in either direction. There is no position feedback; this
	// is the trusted upper bound.
	MotorRunTime time.Duration
	// RetractionDelay is the minimum continuous dry duration required
	// before re-extension is permitted.
	RetractionDelay time.Duration
}

// TransitionCounts tracks the number of each transition since startup.
type TransitionCounts struct {
	RetractsBegun int
	RetractsDone  int
	ExtendsBegun  int
	ExtendsDone   int
	RainOverrides int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    TransitionCounts
}
