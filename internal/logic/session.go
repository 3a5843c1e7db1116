package logic

import "time"

// Classify maps a distance reading to a fill state:
//
//	distance > Empty            → EMPTY
//	Partial < distance ≤ Empty  → PARTIAL
//	distance ≤ Partial          → FULL
//
// Pure function, no side effects. A reading exactly on the Empty boundary is
// PARTIAL; exactly on the Partial boundary is FULL.
func Classify(distance float64, th Thresholds) FillState {
	switch {
	case distance > th.Empty:
		return FillEmpty
	case distance > th.Partial:
		return FillPartial
	default:
		return FillFull
	}
}

// Session holds the notification throttle state for one monitoring run.
// It is owned exclusively by the monitor loop; no locking.
//
// The contract: the first FULL classification after a non-full observation
// always notifies immediately. While the bin stays full, further
// notifications are spaced at least cooldown apart. A failed send leaves the
// state untouched so the next FULL iteration retries.
type Session struct {
	cooldown time.Duration

	lastState          FillState // "" until the first reading
	currentlyFull      bool
	firstFullDetection bool
	lastNotified       time.Time // zero until the first successful send

	counts Counts
}

// NewSession creates a fresh session. State starts not-full with the
// immediate-notify flag armed.
func NewSession(cooldown time.Duration) *Session {
	return &Session{
		cooldown:           cooldown,
		firstFullDetection: true,
	}
}

// Process applies one classified reading at the given time and returns the
// resulting decision. It must be called exactly once per loop iteration.
func (s *Session) Process(state FillState, now time.Time) Decision {
	changed := state != s.lastState
	s.lastState = state
	if changed {
		switch state {
		case FillEmpty:
			s.counts.Empty++
		case FillPartial:
			s.counts.Partial++
		case FillFull:
			s.counts.Full++
		}
	}

	notify := false
	if state == FillFull {
		s.currentlyFull = true
		notify = s.firstFullDetection || now.Sub(s.lastNotified) >= s.cooldown
	} else if s.currentlyFull {
		// Leaving FULL re-arms the immediate notification for the next
		// full cycle.
		s.currentlyFull = false
		s.firstFullDetection = true
	}

	return Decision{State: state, Changed: changed, Notify: notify}
}

// NotificationSent records a successful send at the given time.
func (s *Session) NotificationSent(now time.Time) {
	s.lastNotified = now
	s.firstFullDetection = false
	s.counts.NotificationsSent++
}

// NotificationFailed records a failed send attempt. Throttle state is left
// untouched so the next FULL iteration retries under the same rule.
func (s *Session) NotificationFailed() {
	s.counts.NotificationsFailed++
}

// CurrentState returns the most recently processed fill state, or "" before
// the first reading.
func (s *Session) CurrentState() FillState {
	return s.lastState
}

// IsFull reports whether the most recent classification was FULL.
func (s *Session) IsFull() bool {
	return s.currentlyFull
}

// CountsSnapshot returns a copy of the event counters.
func (s *Session) CountsSnapshot() Counts {
	return s.counts
}
