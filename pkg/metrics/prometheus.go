package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	CommandsHandled     *prometheus.CounterVec
	FlightsTracked      prometheus.Counter
	OfferLookups        *prometheus.CounterVec
	PriceChecks         prometheus.Counter
	PriceChanges        *prometheus.CounterVec
	NotificationsFailed prometheus.Counter
	CyclesSkipped       prometheus.Counter
	CycleDuration       prometheus.Histogram
}

// NewMetrics creates tracker metrics registered on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsHandled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_handled_total",
			Help:      "The total number of chat commands handled, by verb",
		}, []string{"command"}),
		FlightsTracked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_tracked_total",
			Help:      "The total number of tracked flights created",
		}),
		OfferLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_lookups_total",
			Help:      "Upstream offer lookups, by caller and outcome",
		}, []string{"caller", "outcome"}),
		PriceChecks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_checks_total",
			Help:      "The total number of tracked flights re-checked",
		}),
		PriceChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_changes_total",
			Help:      "Detected price changes, by direction",
		}, []string{"direction"}),
		NotificationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "The total number of notifications that could not be delivered",
		}),
		CyclesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_cycles_skipped_total",
			Help:      "Price check cycles skipped because the previous one was still running",
		}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "price_cycle_duration_seconds",
			Help:      "Time taken by one price check cycle",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
