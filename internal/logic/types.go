// Package logic contains pure business logic for bin fill tracking.
// This package has NO external dependencies (no GPIO, HTTP, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// FillState represents the classified fill level of the bin.
type FillState string

const (
	FillEmpty   FillState = "EMPTY"
	FillPartial FillState = "PARTIAL"
	FillFull    FillState = "FULL"
)

// Thresholds holds the two distance boundaries, in centimeters. A reading
// above Empty is an empty bin; a reading at or below Partial is a full one.
type Thresholds struct {
	Empty   float64
	Partial float64
}

// DefaultThresholds returns the standard 30/10 cm boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Empty: 30, Partial: 10}
}

// Validate checks Empty > Partial >= 0.
func (t Thresholds) Validate() error {
	if t.Partial < 0 {
		return fmt.Errorf("partial threshold %.1f must be >= 0", t.Partial)
	}
	if t.Empty <= t.Partial {
		return fmt.Errorf("empty threshold %.1f must exceed partial threshold %.1f", t.Empty, t.Partial)
	}
	return nil
}

// Decision is the outcome of processing one reading.
type Decision struct {
	// State is the classified fill level.
	State FillState
	// Changed is true when State differs from the previous reading
	// (including the first reading of a run).
	Changed bool
	// Notify is true when a full-bin notification should be attempted now.
	Notify bool
}

// Counts tracks totals since startup.
type Counts struct {
	Empty   int // transitions into EMPTY
	Partial int // transitions into PARTIAL
	Full    int // transitions into FULL

	NotificationsSent   int
	NotificationsFailed int
}

// Event represents a fill-state transition to be published.
type Event struct {
	Timestamp time.Time
	State     FillState
	Distance  float64
}
