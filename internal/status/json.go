package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	State         string     `json:"state"`
	Raining       bool       `json:"raining"`
	DrySeconds    int64      `json:"dry_seconds"`
	LastRain      string     `json:"last_rain"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"transition_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of transition counts.
type CountsJSON struct {
	RetractsBegun int `json:"retracts_begun"`
	RetractsDone  int `json:"retracts_done"`
	ExtendsBegun  int `json:"extends_begun"`
	ExtendsDone   int `json:"extends_done"`
	RainOverrides int `json:"rain_overrides"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs       int64  `json:"poll_ms"`
	MotorRunMs   int64  `json:"motor_run_ms"`
	DryDelayMs   int64  `json:"dry_delay_ms"`
	HeartbeatMs  int64  `json:"heartbeat_ms"`
	SpeedPercent int    `json:"speed_percent"`
	Broker       string `json:"broker"`
	HTTPAddr     string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	return StatusInner{
		State:         state,
		Raining:       snap.Raining,
		DrySeconds:    int64(snap.DrySince().Truncate(time.Second).Seconds()),
		LastRain:      snap.LastRain.UTC().Format(time.RFC3339),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			RetractsBegun: snap.Counts.RetractsBegun,
			RetractsDone:  snap.Counts.RetractsDone,
			ExtendsBegun:  snap.Counts.ExtendsBegun,
			ExtendsDone:   snap.Counts.ExtendsDone,
			RainOverrides: snap.Counts.RainOverrides,
		},
		Config: ConfigJSON{
			PollMs:       snap.Config.PollMs,
			MotorRunMs:   snap.Config.MotorRunMs,
			DryDelayMs:   snap.Config.DryDelayMs,
			HeartbeatMs:  snap.Config.HeartbeatMs,
			SpeedPercent: snap.Config.SpeedPercent,
			Broker:       snap.Config.Broker,
			HTTPAddr:     snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
