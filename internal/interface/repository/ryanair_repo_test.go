package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/pkg/logger"
)

const faresBody = `{
  "fares": [
    {"outbound": {
      "flightNumber": "FR1234",
      "departureDate": "2026-05-20T06:25:00",
      "departureAirport": {"iataCode": "VNO", "name": "Vilnius"},
      "arrivalAirport": {"iataCode": "BVA", "name": "Paris Beauvais"},
      "price": {"value": 59.99, "currencyCode": "EUR"}
    }},
    {"outbound": {
      "flightNumber": "FR9",
      "departureDate": "not a date",
      "departureAirport": {"iataCode": "VNO"},
      "arrivalAirport": {"iataCode": "STN"},
      "price": {"value": 10, "currencyCode": "EUR"}
    }}
  ]
}`

func TestRyanairOfferRepository_FindOffers(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(faresBody))
	}))
	defer srv.Close()

	repo := NewRyanairOfferRepository(logger.NewNopLogger(), srv.URL, "EUR", 5*time.Second)
	date := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	offers, err := repo.FindOffers(context.Background(), entity.SingleDay("VNO", "BVA", date))
	require.NoError(t, err)
	require.Len(t, offers, 1)

	o := offers[0]
	assert.Equal(t, "FR1234", o.FlightCode)
	assert.Equal(t, "VNO", o.Origin)
	assert.Equal(t, "BVA", o.Destination)
	assert.Equal(t, 59.99, o.Price)
	assert.Equal(t, "EUR", o.Currency)
	assert.Equal(t, time.Date(2026, 5, 20, 6, 25, 0, 0, time.UTC), o.DepartureTime)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "VNO", q.Get("departureAirportIataCode"))
	assert.Equal(t, "BVA", q.Get("arrivalAirportIataCode"))
	assert.Equal(t, "2026-05-20", q.Get("outboundDepartureDateFrom"))
	assert.Equal(t, "2026-05-20", q.Get("outboundDepartureDateTo"))
	assert.Equal(t, "EUR", q.Get("currency"))
}

func TestRyanairOfferRepository_AnyDestination(t *testing.T) {
	var hasArrival bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasArrival = r.URL.Query()["arrivalAirportIataCode"]
		_, _ = w.Write([]byte(`{"fares": []}`))
	}))
	defer srv.Close()

	repo := NewRyanairOfferRepository(logger.NewNopLogger(), srv.URL, "EUR", 5*time.Second)
	offers, err := repo.FindOffers(context.Background(), entity.SingleDay("VNO", "", time.Now()))
	require.NoError(t, err)
	assert.Empty(t, offers)
	assert.False(t, hasArrival)
}

func TestRyanairOfferRepository_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := NewRyanairOfferRepository(logger.NewNopLogger(), srv.URL, "EUR", 5*time.Second)
	_, err := repo.FindOffers(context.Background(), entity.SingleDay("VNO", "BVA", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
