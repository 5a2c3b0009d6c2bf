package status

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/clothesline/internal/logic"
)

var testConfig = Config{
	PollMs:       100,
	MotorRunMs:   15000,
	DryDelayMs:   1800000,
	HeartbeatMs:  900000,
	SpeedPercent: 80,
	Broker:       "tcp://192.168.1.200:1883",
	HTTPAddr:     ":80",
}

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig)

	snap := tr.Snapshot()
	if snap.State != logic.StateExtended {
		t.Errorf("expected initial state EXTENDED, got %s", snap.State)
	}
	if !snap.LastRain.Equal(start) {
		t.Errorf("expected LastRain %v, got %v", start, snap.LastRain)
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("expected StartTime %v, got %v", start, snap.StartTime)
	}
	if snap.Config != testConfig {
		t.Errorf("config not carried: %+v", snap.Config)
	}
}

func TestTrackerUpdate(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig)

	rain := start.Add(5 * time.Minute)
	counts := logic.TransitionCounts{RetractsBegun: 2, RetractsDone: 1, RainOverrides: 1}
	tr.Update(logic.StateRetracting, true, rain, counts)

	snap := tr.Snapshot()
	if snap.State != logic.StateRetracting {
		t.Errorf("expected RETRACTING, got %s", snap.State)
	}
	if !snap.Raining {
		t.Error("expected raining")
	}
	if !snap.LastRain.Equal(rain) {
		t.Errorf("expected LastRain %v, got %v", rain, snap.LastRain)
	}
	if snap.Counts != counts {
		t.Errorf("expected counts %+v, got %+v", counts, snap.Counts)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig)

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTT connected")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTT disconnected")
	}
}

func TestSnapshotDrySince(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		LastRain: start,
		Now:      start.Add(42 * time.Second),
	}
	if got := snap.DrySince(); got != 42*time.Second {
		t.Errorf("expected 42s dry, got %v", got)
	}

	snap.Raining = true
	if got := snap.DrySince(); got != 0 {
		t.Errorf("expected 0 dry while raining, got %v", got)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(90 * time.Minute)}
	if got := snap.Uptime(); got != 90*time.Minute {
		t.Errorf("expected 90m uptime, got %v", got)
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:         logic.StateRetracted,
		Raining:       false,
		LastRain:      start.Add(10 * time.Minute),
		Counts:        logic.TransitionCounts{RetractsBegun: 1, RetractsDone: 1},
		StartTime:     start,
		Now:           start.Add(20 * time.Minute),
		MQTTConnected: true,
		Config:        testConfig,
	}

	data := FormatJSON(snap)

	var decoded StatusJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := decoded.Status
	if s.State != "RETRACTED" {
		t.Errorf("state: got %q", s.State)
	}
	if s.DrySeconds != 600 {
		t.Errorf("dry_seconds: got %d, want 600", s.DrySeconds)
	}
	if s.UptimeSeconds != 1200 {
		t.Errorf("uptime_seconds: got %d, want 1200", s.UptimeSeconds)
	}
	if !s.MQTT.Connected || s.MQTT.Broker != testConfig.Broker {
		t.Errorf("mqtt: got %+v", s.MQTT)
	}
	if s.Counts.RetractsBegun != 1 || s.Counts.RetractsDone != 1 {
		t.Errorf("counts: got %+v", s.Counts)
	}
	if s.Event != "" {
		t.Errorf("web JSON should not carry an event, got %q", s.Event)
	}
}

func TestFormatJSONUnknownState(t *testing.T) {
	data := FormatJSON(Snapshot{})

	var decoded StatusJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Status.State != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for empty state, got %q", decoded.Status.State)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:     logic.StateExtended,
		StartTime: start,
		Now:       start,
		Config:    testConfig,
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var decoded StatusJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", decoded.Status.Event)
	}
	if decoded.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", decoded.Status.Reason)
	}

	// MQTT payloads are compact, not indented.
	if strings.Contains(string(data), "\n") {
		t.Error("status event payload should be compact JSON")
	}
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			tr.Update(logic.StateRetracting, true, time.Now(), logic.TransitionCounts{RetractsBegun: i})
		}
	}()

	for i := 0; i < 1000; i++ {
		_ = tr.Snapshot()
	}
	<-done
}
