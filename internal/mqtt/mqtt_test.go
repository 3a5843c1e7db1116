package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/bin-monitor/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	event := logic.Event{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		State:     logic.FillFull,
		Distance:  8.2,
	}

	payload, err := FormatPayload(event, "Main Street Depot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Bin.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Bin.Timestamp)
	}
	if parsed.Bin.State != "FULL" {
		t.Errorf("unexpected state: %s", parsed.Bin.State)
	}
	if parsed.Bin.DistanceCM != 8.2 {
		t.Errorf("unexpected distance: %v", parsed.Bin.DistanceCM)
	}
	if parsed.Bin.Location != "Main Street Depot" {
		t.Errorf("unexpected location: %s", parsed.Bin.Location)
	}
}

func TestFormatPayloadAllStates(t *testing.T) {
	for _, state := range []logic.FillState{logic.FillEmpty, logic.FillPartial, logic.FillFull} {
		t.Run(string(state), func(t *testing.T) {
			payload, err := FormatPayload(logic.Event{
				Timestamp: time.Now(),
				State:     state,
				Distance:  25,
			}, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var parsed Payload
			if err := json.Unmarshal(payload, &parsed); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if parsed.Bin.State != string(state) {
				t.Errorf("state: got %s, want %s", parsed.Bin.State, state)
			}
		})
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %s", parsed.System.Event)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %s", parsed.System.Reason)
	}
	if parsed.System.Timestamp != "2026-02-02T08:00:00Z" {
		t.Errorf("timestamp: got %s", parsed.System.Timestamp)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload not passed through: %s", payload)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()
	f.Location = "depot"

	event := logic.Event{
		Timestamp: time.Now(),
		State:     logic.FillPartial,
		Distance:  20,
	}

	if err := f.Publish(event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.Events))
	}
	if f.Events[0].State != logic.FillPartial {
		t.Errorf("unexpected state: %s", f.Events[0].State)
	}
	if len(f.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(f.Payloads))
	}
}

func TestFakePublisherError(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")

	if err := f.Publish(logic.Event{State: logic.FillFull}); err == nil {
		t.Error("expected injected publish error")
	}
	if len(f.Events) != 0 {
		t.Errorf("failed publish must not be recorded, got %d", len(f.Events))
	}
}
