package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fare-tracker-service/internal/domain/entity"
)

var (
	// designator (two letters, or letter+digit either way) glued to the number
	gluedFlightCode = regexp.MustCompile(`^([A-Z]{2}|[A-Z][0-9]|[0-9][A-Z])([0-9]{1,5}[A-Z]?)$`)
	flightCode      = regexp.MustCompile(`^([A-Z]{2}|[A-Z][0-9]|[0-9][A-Z]) [0-9]{1,5}[A-Z]?$`)
	airportCode     = regexp.MustCompile(`^[A-Z]{3}$`)
	flightNumber    = regexp.MustCompile(`^[0-9]{1,5}[A-Z]?$`)
)

// NormalizeFlightCode converts user input to the upstream format
// (e.g. "fr1234" -> "FR 1234"). Applying it twice changes nothing.
func NormalizeFlightCode(code string) string {
	code = strings.Join(strings.Fields(strings.ToUpper(code)), " ")
	if m := gluedFlightCode.FindStringSubmatch(code); m != nil {
		return m[1] + " " + m[2]
	}
	return code
}

// IsValidFlightCode reports whether a normalized code looks like "FR 1234"
func IsValidFlightCode(code string) bool {
	return flightCode.MatchString(code)
}

// IsAirportCode reports whether code is exactly three letters
func IsAirportCode(code string) bool {
	return airportCode.MatchString(code)
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(entity.DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

// MatchOffer returns the first offer whose normalized code equals code
func MatchOffer(offers []*entity.Offer, code string) *entity.Offer {
	want := NormalizeFlightCode(code)
	for _, o := range offers {
		if o != nil && NormalizeFlightCode(o.FlightCode) == want {
			return o
		}
	}
	return nil
}

// OfferCodes lists the distinct normalized codes of offers, in order
func OfferCodes(offers []*entity.Offer) []string {
	seen := make(map[string]bool, len(offers))
	codes := make([]string, 0, len(offers))
	for _, o := range offers {
		if o == nil {
			continue
		}
		c := NormalizeFlightCode(o.FlightCode)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		codes = append(codes, c)
	}
	return codes
}
