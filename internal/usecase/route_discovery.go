package usecase

import (
	"context"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/pkg/logger"
	"fare-tracker-service/pkg/metrics"
	"fare-tracker-service/pkg/utils"
)

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// RouteDiscovery finds the route of a flight by scanning candidate origins
type RouteDiscovery struct {
	offerRepo repository.OfferRepository
	origins   []string
	delay     time.Duration
	sleep     Sleeper
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewRouteDiscovery creates a discovery over origins, searched in order with
// delay between consecutive lookups.
func NewRouteDiscovery(
	offerRepo repository.OfferRepository,
	origins []string,
	delay time.Duration,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *RouteDiscovery {
	return &RouteDiscovery{
		offerRepo: offerRepo,
		origins:   append([]string(nil), origins...),
		delay:     delay,
		sleep:     sleepContext,
		logger:    logger.With("component", "route_discovery"),
		metrics:   metrics,
	}
}

// WithSleeper replaces the wait between lookups
func (d *RouteDiscovery) WithSleeper(s Sleeper) *RouteDiscovery {
	d.sleep = s
	return d
}

// Origins returns the candidate origins in search order
func (d *RouteDiscovery) Origins() []string {
	return append([]string(nil), d.origins...)
}

// Find returns the first offer matching flightCode on date, trying origins
// in order. A failed lookup for one origin counts as "no offers" there.
// Exhausting the list returns an ErrNotFound error.
func (d *RouteDiscovery) Find(ctx context.Context, flightCode string, date time.Time) (*entity.Offer, error) {
	code := utils.NormalizeFlightCode(flightCode)
	day := date.Format(entity.DateLayout)

	for i, origin := range d.origins {
		if i > 0 && d.delay > 0 {
			if err := d.sleep(ctx, d.delay); err != nil {
				return nil, err
			}
		}

		offers, err := d.offerRepo.FindOffers(ctx, entity.SingleDay(origin, "", date))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.metrics.OfferLookups.WithLabelValues("discovery", "error").Inc()
			d.logger.Warn("Lookup failed, skipping origin", "origin", origin, "date", day, "error", err)
			continue
		}
		d.metrics.OfferLookups.WithLabelValues("discovery", "ok").Inc()

		match := utils.MatchOffer(offers, code)
		if match == nil || match.Destination == "" {
			continue
		}

		found := *match
		if found.Origin == "" {
			found.Origin = origin
		}
		d.logger.Info("Route discovered", "flightCode", code, "date", day,
			"origin", found.Origin, "destination", found.Destination, "lookups", i+1)
		return &found, nil
	}

	return nil, newError(ErrNotFound, nil,
		"Flight %s on %s was not found departing from any of the %d airports I searched. Send the route too: ADD %s %s [ORIGIN] [DEST]",
		code, day, len(d.origins), code, day)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
