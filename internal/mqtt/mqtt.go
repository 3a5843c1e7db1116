// Package mqtt publishes bin monitor events with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/bin-monitor/internal/logic"
)

// Topic is the MQTT topic for fill-state transition events.
const Topic = "waste/bin/monitor/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "waste/bin/monitor/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a fill-state transition to the broker.
	// Returns error if publishing fails (must not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // "STARTUP", "SHUTDOWN"
	Reason     string // e.g. "SIGTERM" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the broker should retain the message
}

// Payload is the MQTT message envelope for bin events.
type Payload struct {
	Bin BinPayload `json:"bin"`
}

// BinPayload contains the fill-state event details.
type BinPayload struct {
	Timestamp  string  `json:"timestamp"`
	State      string  `json:"state"`
	DistanceCM float64 `json:"distance_cm"`
	Location   string  `json:"location,omitempty"`
}

// FormatPayload creates the JSON payload for a fill-state event.
func FormatPayload(event logic.Event, location string) ([]byte, error) {
	payload := Payload{
		Bin: BinPayload{
			Timestamp:  event.Timestamp.UTC().Format(time.RFC3339),
			State:      string(event.State),
			DistanceCM: event.Distance,
			Location:   location,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message envelope for system events without a
// full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
