// Package status provides a thread-safe status tracker for the bin-monitor
// daemon. It is read by the HTTP status handlers while the monitor loop
// writes to it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/bin-monitor/internal/logic"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	IntervalMs int64
	RecoveryMs int64
	CooldownMs int64
	EmptyCM    float64
	PartialCM  float64
	Broker     string
	HTTPPort   string
	Location   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State            logic.FillState
	DistanceCM       float64
	LastReading      time.Time
	LastNotification time.Time
	Counts           logic.Counts
	StartTime        time.Time
	Now              time.Time
	MQTTConnected    bool
	Network          *NetworkInfo
	Config           Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the fill state, last distance, and event counts.
// Called from the monitor loop on every iteration.
func (t *Tracker) Update(state logic.FillState, distanceCM float64, at time.Time, counts logic.Counts) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.DistanceCM = distanceCM
	t.snap.LastReading = at
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetLastNotification records when the most recent alert went out.
func (t *Tracker) SetLastNotification(at time.Time) {
	t.mu.Lock()
	t.snap.LastNotification = at
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
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
