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
	Event            string       `json:"event,omitempty"`
	Reason           string       `json:"reason,omitempty"`
	State            string       `json:"state"`
	DistanceCM       float64      `json:"distance_cm"`
	LastReading      string       `json:"last_reading,omitempty"`
	LastNotification string       `json:"last_notification,omitempty"`
	UptimeSeconds    int64        `json:"uptime_seconds"`
	StartTime        string       `json:"start_time"`
	Timestamp        string       `json:"timestamp"`
	MQTT             MQTTStatus   `json:"mqtt"`
	Counts           CountsJSON   `json:"event_counts"`
	Network          *NetworkJSON `json:"network,omitempty"`
	Config           ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Empty               int `json:"empty"`
	Partial             int `json:"partial"`
	Full                int `json:"full"`
	NotificationsSent   int `json:"notifications_sent"`
	NotificationsFailed int `json:"notifications_failed"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	IntervalMs int64   `json:"interval_ms"`
	RecoveryMs int64   `json:"recovery_ms"`
	CooldownMs int64   `json:"cooldown_ms"`
	EmptyCM    float64 `json:"empty_cm"`
	PartialCM  float64 `json:"partial_cm"`
	Broker     string  `json:"broker"`
	HTTPPort   string  `json:"http_port"`
	Location   string  `json:"location,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	inner := StatusInner{
		State:         state,
		DistanceCM:    snap.DistanceCM,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Empty:               snap.Counts.Empty,
			Partial:             snap.Counts.Partial,
			Full:                snap.Counts.Full,
			NotificationsSent:   snap.Counts.NotificationsSent,
			NotificationsFailed: snap.Counts.NotificationsFailed,
		},
		Config: ConfigJSON{
			IntervalMs: snap.Config.IntervalMs,
			RecoveryMs: snap.Config.RecoveryMs,
			CooldownMs: snap.Config.CooldownMs,
			EmptyCM:    snap.Config.EmptyCM,
			PartialCM:  snap.Config.PartialCM,
			Broker:     snap.Config.Broker,
			HTTPPort:   snap.Config.HTTPPort,
			Location:   snap.Config.Location,
		},
	}
	if !snap.LastReading.IsZero() {
		inner.LastReading = snap.LastReading.UTC().Format(time.RFC3339)
	}
	if !snap.LastNotification.IsZero() {
		inner.LastNotification = snap.LastNotification.UTC().Format(time.RFC3339)
	}
	return inner
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
