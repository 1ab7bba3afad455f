package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/pkg/logger"
)

// DefaultFaresURL is the Ryanair fare finder endpoint for one-way fares
const DefaultFaresURL = "https://services-api.ryanair.com/farfnd/v4/oneWayFares"

// RyanairOfferRepository looks up the cheapest one-way fares per flight
type RyanairOfferRepository struct {
	logger   logger.Logger
	client   *http.Client
	baseURL  string
	currency string
}

// NewRyanairOfferRepository creates a fare lookup client. Every request is
// bounded by timeout.
func NewRyanairOfferRepository(logger logger.Logger, baseURL, currency string, timeout time.Duration) repository.OfferRepository {
	if baseURL == "" {
		baseURL = DefaultFaresURL
	}
	if currency == "" {
		currency = "EUR"
	}
	return &RyanairOfferRepository{
		logger:   logger,
		client:   &http.Client{Timeout: timeout},
		baseURL:  baseURL,
		currency: currency,
	}
}

type faresResponse struct {
	Fares []struct {
		Outbound struct {
			FlightNumber     string `json:"flightNumber"`
			DepartureDate    string `json:"departureDate"`
			DepartureAirport struct {
				IataCode string `json:"iataCode"`
			} `json:"departureAirport"`
			ArrivalAirport struct {
				IataCode string `json:"iataCode"`
			} `json:"arrivalAirport"`
			Price struct {
				Value        float64 `json:"value"`
				CurrencyCode string  `json:"currencyCode"`
			} `json:"price"`
		} `json:"outbound"`
	} `json:"fares"`
}

// FindOffers queries fares departing query.Origin in the date range
func (r *RyanairOfferRepository) FindOffers(ctx context.Context, query entity.OfferQuery) ([]*entity.Offer, error) {
	params := url.Values{}
	params.Set("departureAirportIataCode", query.Origin)
	params.Set("outboundDepartureDateFrom", query.DateFrom.Format(entity.DateLayout))
	params.Set("outboundDepartureDateTo", query.DateTo.Format(entity.DateLayout))
	params.Set("outboundDepartureTimeFrom", "00:00")
	params.Set("outboundDepartureTimeTo", "23:59")
	params.Set("currency", r.currency)
	params.Set("language", "en")
	if query.Destination != "" {
		params.Set("arrivalAirportIataCode", query.Destination)
	}

	reqURL := r.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Debug("Querying fares", "origin", query.Origin, "destination", query.Destination,
		"dateFrom", query.DateFrom.Format(entity.DateLayout), "dateTo", query.DateTo.Format(entity.DateLayout))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fare service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed faresResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	offers := make([]*entity.Offer, 0, len(parsed.Fares))
	for _, fare := range parsed.Fares {
		out := fare.Outbound
		departure, err := time.Parse("2006-01-02T15:04:05", out.DepartureDate)
		if err != nil {
			r.logger.Warn("Skipping fare with unparsable departure date", "flightNumber", out.FlightNumber, "departureDate", out.DepartureDate)
			continue
		}
		offers = append(offers, &entity.Offer{
			FlightCode:    out.FlightNumber,
			Origin:        out.DepartureAirport.IataCode,
			Destination:   out.ArrivalAirport.IataCode,
			DepartureTime: departure,
			Price:         out.Price.Value,
			Currency:      out.Price.CurrencyCode,
		})
	}

	return offers, nil
}
