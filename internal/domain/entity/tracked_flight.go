// internal/domain/entity/tracked_flight.go
package entity

import (
	"time"
)

// DateLayout is the calendar date format used in chat commands and storage
const DateLayout = "2006-01-02"

// TrackedFlight is one flight a chat owner watches for price changes.
// Several rows may share (OwnerID, FlightCode, Date).
type TrackedFlight struct {
	ID          string
	OwnerID     int64
	Origin      string
	Destination string
	Date        time.Time // UTC midnight
	FlightCode  string    // normalized, e.g. "FR 1234"
	LastPrice   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DateString returns the flight date as YYYY-MM-DD
func (f *TrackedFlight) DateString() string {
	return f.Date.Format(DateLayout)
}
