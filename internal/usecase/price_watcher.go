package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/pkg/logger"
	"fare-tracker-service/pkg/metrics"
	"fare-tracker-service/pkg/utils"
)

const offerCacheSize = 256

// CheckReport summarizes one price check cycle
type CheckReport struct {
	Checked      int
	Skipped      int
	Unchanged    int
	Changed      int
	Notified     int
	Failed       int
	SkippedCycle bool
}

// PriceWatcher periodically re-checks every tracked flight and notifies
// owners about price changes. Cycles never overlap.
type PriceWatcher struct {
	flightRepo repository.TrackedFlightRepository
	offerRepo  repository.OfferRepository
	notifier   repository.NotifierRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
	interval   time.Duration
	currency   string
	now        func() time.Time
	running    atomic.Bool
}

// NewPriceWatcher creates a new price watcher
func NewPriceWatcher(
	flightRepo repository.TrackedFlightRepository,
	offerRepo repository.OfferRepository,
	notifier repository.NotifierRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	interval time.Duration,
	currency string,
) *PriceWatcher {
	return &PriceWatcher{
		flightRepo: flightRepo,
		offerRepo:  offerRepo,
		notifier:   notifier,
		logger:     logger.With("component", "price_watcher"),
		metrics:    metrics,
		interval:   interval,
		currency:   currency,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to recognise departed flights
func (w *PriceWatcher) WithClock(now func() time.Time) *PriceWatcher {
	w.now = now
	return w
}

// Start runs a cycle right away and then one per interval until ctx is done
func (w *PriceWatcher) Start(ctx context.Context) error {
	w.logger.Info("Price watcher started", "interval", w.interval)
	w.runCycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Price watcher stopped")
			return nil
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *PriceWatcher) runCycle(ctx context.Context) {
	report, err := w.CheckPrices(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("Price check cycle failed", "error", err)
		return
	}
	if report.SkippedCycle {
		return
	}
	w.logger.Info("Price check cycle finished", "checked", report.Checked, "changed", report.Changed,
		"notified", report.Notified, "skipped", report.Skipped, "failed", report.Failed)
}

// CheckPrices runs one cycle over every tracked flight. A failure on one row
// is logged and counted; only failing to list the rows is returned. When a
// cycle is already running this one is skipped.
func (w *PriceWatcher) CheckPrices(ctx context.Context) (CheckReport, error) {
	var report CheckReport
	if !w.running.CompareAndSwap(false, true) {
		w.metrics.CyclesSkipped.Inc()
		w.logger.Warn("Previous price check still running, skipping cycle")
		report.SkippedCycle = true
		return report, nil
	}
	defer w.running.Store(false)

	start := time.Now()
	defer func() {
		w.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	flights, err := w.flightRepo.FindAll(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list tracked flights: %w", err)
	}

	cache, err := lru.New[string, []*entity.Offer](offerCacheSize)
	if err != nil {
		return report, fmt.Errorf("failed to create offer cache: %w", err)
	}

	today := truncateDay(w.now())
	for _, flight := range flights {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		w.checkFlight(ctx, flight, today, cache, &report)
	}

	return report, nil
}

func (w *PriceWatcher) checkFlight(ctx context.Context, flight *entity.TrackedFlight, today time.Time,
	cache *lru.Cache[string, []*entity.Offer], report *CheckReport) {
	log := w.logger.With("flightId", flight.ID, "flightCode", flight.FlightCode, "date", flight.DateString())

	defer func() {
		if r := recover(); r != nil {
			report.Failed++
			log.Error("Panic while checking flight", "panic", r)
		}
	}()

	if flight.Date.Before(today) {
		report.Skipped++
		log.Debug("Flight already departed, skipping")
		return
	}

	report.Checked++
	w.metrics.PriceChecks.Inc()

	offers, err := w.lookup(ctx, flight, cache)
	if err != nil {
		report.Failed++
		log.Warn("Price lookup failed", "error", err)
		return
	}

	match := utils.MatchOffer(offers, flight.FlightCode)
	if match == nil {
		report.Skipped++
		log.Debug("Flight not offered anymore, skipping")
		return
	}

	if samePrice(match.Price, flight.LastPrice) {
		report.Unchanged++
		return
	}

	report.Changed++
	direction := "📉 Down"
	label := "down"
	if match.Price > flight.LastPrice {
		direction = "📈 Up"
		label = "up"
	}
	w.metrics.PriceChanges.WithLabelValues(label).Inc()

	text := fmt.Sprintf(utils.MSG_PRICE_CHANGE, direction, flight.FlightCode, flight.Origin, flight.Destination,
		flight.DateString(), match.Price, w.currency, flight.LastPrice, w.currency)
	if err := w.notifier.Send(ctx, flight.OwnerID, text); err != nil {
		report.Failed++
		w.metrics.NotificationsFailed.Inc()
		log.Error("Failed to send price notification", "ownerId", flight.OwnerID, "error", err)
	} else {
		report.Notified++
	}

	if err := w.flightRepo.UpdatePrice(ctx, flight.ID, match.Price); err != nil {
		report.Failed++
		log.Error("Failed to update price", "price", match.Price, "error", err)
		return
	}

	log.Info("Price changed", "direction", label, "old", flight.LastPrice, "new", match.Price)
}

func (w *PriceWatcher) lookup(ctx context.Context, flight *entity.TrackedFlight,
	cache *lru.Cache[string, []*entity.Offer]) ([]*entity.Offer, error) {
	key := strings.Join([]string{flight.Origin, flight.Destination, flight.DateString()}, "|")
	if offers, ok := cache.Get(key); ok {
		return offers, nil
	}

	// failures are not cached so the next row on the route asks again
	offers, err := w.offerRepo.FindOffers(ctx, entity.SingleDay(flight.Origin, flight.Destination, flight.Date))
	if err != nil {
		w.metrics.OfferLookups.WithLabelValues("watcher", "error").Inc()
		return nil, err
	}
	w.metrics.OfferLookups.WithLabelValues("watcher", "ok").Inc()
	cache.Add(key, offers)
	return offers, nil
}

// samePrice compares prices in whole cents
func samePrice(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
