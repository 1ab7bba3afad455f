package entity

import "time"

// Offer is a fare reported upstream for one flight on one day
type Offer struct {
	FlightCode    string
	Origin        string
	Destination   string
	DepartureTime time.Time
	Price         float64
	Currency      string
}

// OfferQuery selects offers departing from Origin between DateFrom and DateTo.
// An empty Destination means any destination.
type OfferQuery struct {
	Origin      string
	Destination string
	DateFrom    time.Time
	DateTo      time.Time
}

// SingleDay builds a query for one calendar day
func SingleDay(origin, destination string, date time.Time) OfferQuery {
	return OfferQuery{
		Origin:      origin,
		Destination: destination,
		DateFrom:    date,
		DateTo:      date,
	}
}
