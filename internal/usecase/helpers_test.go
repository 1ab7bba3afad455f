package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/pkg/metrics"
)

var flightDate = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

func routeKey(origin, destination string, date time.Time) string {
	return strings.Join([]string{origin, destination, date.Format(entity.DateLayout)}, "|")
}

// fakeOffers answers lookups from a table keyed by origin|destination|date
type fakeOffers struct {
	mu      sync.Mutex
	offers  map[string][]*entity.Offer
	errs    map[string]error
	flaky   map[string]int
	queries []entity.OfferQuery
	hook    func(entity.OfferQuery)
}

func newFakeOffers() *fakeOffers {
	return &fakeOffers{
		offers: make(map[string][]*entity.Offer),
		errs:   make(map[string]error),
		flaky:  make(map[string]int),
	}
}

func (f *fakeOffers) add(origin, destination string, date time.Time, offers ...*entity.Offer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := routeKey(origin, destination, date)
	f.offers[key] = append(f.offers[key], offers...)
}

func (f *fakeOffers) fail(origin, destination string, date time.Time, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[routeKey(origin, destination, date)] = err
}

// failTimes makes the next n lookups of the route fail, later ones succeed
func (f *fakeOffers) failTimes(origin, destination string, date time.Time, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flaky[routeKey(origin, destination, date)] = n
}

func (f *fakeOffers) FindOffers(ctx context.Context, query entity.OfferQuery) ([]*entity.Offer, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	hook := f.hook
	key := routeKey(query.Origin, query.Destination, query.DateFrom)
	offers, err := f.offers[key], f.errs[key]
	if f.flaky[key] > 0 {
		f.flaky[key]--
		err = errors.New("upstream unavailable")
	}
	f.mu.Unlock()

	if hook != nil {
		hook(query)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Offer, 0, len(offers))
	for _, o := range offers {
		c := *o
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeOffers) calls() []entity.OfferQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.OfferQuery(nil), f.queries...)
}

type sentMessage struct {
	OwnerID int64
	Text    string
}

// recordingNotifier keeps every message it is asked to send
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, ownerID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{OwnerID: ownerID, Text: text})
	return nil
}

func (n *recordingNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

func offer(code, origin, destination string, price float64) *entity.Offer {
	return &entity.Offer{
		FlightCode:    code,
		Origin:        origin,
		Destination:   destination,
		DepartureTime: flightDate.Add(6 * time.Hour),
		Price:         price,
		Currency:      "EUR",
	}
}

func nopSleeps(t *testing.T) (func(context.Context, time.Duration) error, func() []time.Duration) {
	t.Helper()
	var mu sync.Mutex
	var sleeps []time.Duration
	sleeper := func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		sleeps = append(sleeps, d)
		return ctx.Err()
	}
	return sleeper, func() []time.Duration {
		mu.Lock()
		defer mu.Unlock()
		return append([]time.Duration(nil), sleeps...)
	}
}
