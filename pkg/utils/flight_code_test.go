package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fare-tracker-service/internal/domain/entity"
)

func TestNormalizeFlightCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fr1234", "FR 1234"},
		{"FR 1234", "FR 1234"},
		{"  fr   1234 ", "FR 1234"},
		{"w61234", "W6 1234"},
		{"6e42", "6E 42"},
		{"fr8A", "FR 8A"},
		{"FR123456", "FR123456"},
		{"ABC123", "ABC123"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeFlightCode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeFlightCode(got), "normalizing twice must not change the code")
		})
	}
}

func TestIsValidFlightCode(t *testing.T) {
	assert.True(t, IsValidFlightCode("FR 1234"))
	assert.True(t, IsValidFlightCode("W6 1"))
	assert.True(t, IsValidFlightCode(NormalizeFlightCode("fr8a")))
	assert.False(t, IsValidFlightCode("FR1234"))
	assert.False(t, IsValidFlightCode("FRX 1234"))
	assert.False(t, IsValidFlightCode("FR 123456"))
	assert.False(t, IsValidFlightCode(""))
}

func TestIsAirportCode(t *testing.T) {
	assert.True(t, IsAirportCode("VNO"))
	assert.False(t, IsAirportCode("vno"))
	assert.False(t, IsAirportCode("VN"))
	assert.False(t, IsAirportCode("VN0"))
	assert.False(t, IsAirportCode("VNOX"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-05-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2026-5-20", "20-05-2026", "2026-02-30", "tomorrow", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestMatchOffer(t *testing.T) {
	offers := []*entity.Offer{
		{FlightCode: "FR5678", Price: 10},
		nil,
		{FlightCode: "FR1234", Price: 59.99},
		{FlightCode: "FR 1234", Price: 70},
	}

	match := MatchOffer(offers, "fr 1234")
	require.NotNil(t, match)
	assert.Equal(t, 59.99, match.Price)

	assert.Nil(t, MatchOffer(offers, "FR 9999"))
	assert.Nil(t, MatchOffer(nil, "FR 1234"))
}

func TestOfferCodes(t *testing.T) {
	offers := []*entity.Offer{
		{FlightCode: "FR5678"},
		{FlightCode: "FR1234"},
		{FlightCode: "FR 5678"},
		nil,
		{FlightCode: ""},
	}
	assert.Equal(t, []string{"FR 5678", "FR 1234"}, OfferCodes(offers))
}
