package status

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/bin-monitor/internal/logic"
)

func testConfig() Config {
	return Config{
		IntervalMs: 10000,
		RecoveryMs: 5000,
		CooldownMs: 300000,
		EmptyCM:    30,
		PartialCM:  10,
		Broker:     "tcp://192.168.1.200:1883",
		HTTPPort:   ":8080",
		Location:   "Main Street Depot",
	}
}

func TestTrackerUpdateAndSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	at := start.Add(30 * time.Second)
	tr.Update(logic.FillPartial, 22.5, at, logic.Counts{Partial: 1})
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if snap.State != logic.FillPartial {
		t.Errorf("state: got %s", snap.State)
	}
	if snap.DistanceCM != 22.5 {
		t.Errorf("distance: got %v", snap.DistanceCM)
	}
	if !snap.LastReading.Equal(at) {
		t.Errorf("last reading: got %v", snap.LastReading)
	}
	if snap.Counts.Partial != 1 {
		t.Errorf("counts: got %+v", snap.Counts)
	}
	if !snap.MQTTConnected {
		t.Error("expected MQTT connected")
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v", snap.StartTime)
	}
	if snap.Now.IsZero() {
		t.Error("snapshot Now should be set")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	tr.Update(logic.FillEmpty, 50, start, logic.Counts{Empty: 1})
	snap := tr.Snapshot()

	tr.Update(logic.FillFull, 5, start.Add(time.Minute), logic.Counts{Empty: 1, Full: 1})
	if snap.State != logic.FillEmpty {
		t.Error("earlier snapshot must not observe later updates")
	}
}

func TestFormatJSONFields(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.Update(logic.FillFull, 8.2, start.Add(time.Minute), logic.Counts{Full: 1, NotificationsSent: 1})
	tr.SetLastNotification(start.Add(time.Minute))
	tr.SetNetwork(&NetworkInfo{Type: "wifi", IP: "192.168.1.50", Status: "connected", SSID: "DepotNet"})

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := parsed.Status
	if s.State != "FULL" {
		t.Errorf("state: got %s", s.State)
	}
	if s.DistanceCM != 8.2 {
		t.Errorf("distance: got %v", s.DistanceCM)
	}
	if s.Counts.Full != 1 || s.Counts.NotificationsSent != 1 {
		t.Errorf("counts: got %+v", s.Counts)
	}
	if s.LastNotification == "" {
		t.Error("last_notification should be set")
	}
	if s.Network == nil || s.Network.SSID != "DepotNet" {
		t.Errorf("network: got %+v", s.Network)
	}
	if s.Config.Location != "Main Street Depot" {
		t.Errorf("config location: got %s", s.Config.Location)
	}
	if s.Event != "" {
		t.Errorf("web JSON must not carry an event, got %q", s.Event)
	}
}

func TestFormatJSONUnknownState(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.State != "UNKNOWN" {
		t.Errorf("state before first reading: got %s, want UNKNOWN", parsed.Status.State)
	}
	if parsed.Status.LastReading != "" {
		t.Errorf("last_reading should be omitted before first reading, got %q", parsed.Status.LastReading)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	payload := FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %s", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %s", parsed.Status.Reason)
	}
	if strings.Contains(string(payload), "\n") {
		t.Error("MQTT status payload should be compact JSON")
	}
}

func TestUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(90 * time.Second)}
	if got := snap.Uptime(); got != 90*time.Second {
		t.Errorf("uptime: got %v", got)
	}
}
