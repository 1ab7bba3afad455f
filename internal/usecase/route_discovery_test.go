package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fare-tracker-service/internal/usecase"
	"fare-tracker-service/pkg/logger"
)

func TestRouteDiscovery_LookupsAndDelays(t *testing.T) {
	origins := []string{"STN", "DUB", "VNO", "BGY"}

	for k := 1; k <= len(origins); k++ {
		offers := newFakeOffers()
		offers.add(origins[k-1], "", flightDate, offer("FR1234", origins[k-1], "BVA", 59.99))
		sleeper, sleeps := nopSleeps(t)

		d := usecase.NewRouteDiscovery(offers, origins, 2*time.Second, logger.NewNopLogger(), newTestMetrics()).
			WithSleeper(sleeper)

		found, err := d.Find(context.Background(), "fr1234", flightDate)
		require.NoError(t, err)
		assert.Equal(t, origins[k-1], found.Origin)
		assert.Equal(t, "BVA", found.Destination)
		assert.Equal(t, 59.99, found.Price)

		calls := offers.calls()
		require.Len(t, calls, k, "match at position %d", k)
		for i, q := range calls {
			assert.Equal(t, origins[i], q.Origin, "origins are scanned in order")
			assert.Empty(t, q.Destination)
		}
		assert.Len(t, sleeps(), k-1)
		for _, s := range sleeps() {
			assert.Equal(t, 2*time.Second, s)
		}
	}
}

func TestRouteDiscovery_LookupErrorMeansNoOffers(t *testing.T) {
	offers := newFakeOffers()
	offers.fail("STN", "", flightDate, errors.New("boom"))
	offers.add("DUB", "", flightDate, offer("FR1234", "DUB", "BVA", 30))
	sleeper, _ := nopSleeps(t)

	d := usecase.NewRouteDiscovery(offers, []string{"STN", "DUB"}, time.Second, logger.NewNopLogger(), newTestMetrics()).
		WithSleeper(sleeper)

	found, err := d.Find(context.Background(), "FR 1234", flightDate)
	require.NoError(t, err)
	assert.Equal(t, "DUB", found.Origin)
}

func TestRouteDiscovery_NotFound(t *testing.T) {
	offers := newFakeOffers()
	offers.add("STN", "", flightDate, offer("FR9999", "STN", "DUB", 30))
	sleeper, sleeps := nopSleeps(t)

	d := usecase.NewRouteDiscovery(offers, []string{"STN", "DUB", "VNO"}, time.Second, logger.NewNopLogger(), newTestMetrics()).
		WithSleeper(sleeper)

	found, err := d.Find(context.Background(), "FR1234", flightDate)
	assert.Nil(t, found)
	require.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Contains(t, usecase.ReplyFor(err), "FR 1234")
	assert.Contains(t, usecase.ReplyFor(err), "3 airports")
	assert.Len(t, offers.calls(), 3)
	assert.Len(t, sleeps(), 2)
}

func TestRouteDiscovery_Cancelled(t *testing.T) {
	offers := newFakeOffers()
	ctx, cancel := context.WithCancel(context.Background())

	d := usecase.NewRouteDiscovery(offers, []string{"STN", "DUB", "VNO"}, time.Second, logger.NewNopLogger(), newTestMetrics()).
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		})

	_, err := d.Find(ctx, "FR1234", flightDate)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, offers.calls(), 1)
}

func TestRouteDiscovery_DefaultSleeperHonoursContext(t *testing.T) {
	offers := newFakeOffers()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d := usecase.NewRouteDiscovery(offers, []string{"STN", "DUB"}, time.Hour, logger.NewNopLogger(), newTestMetrics())

	start := time.Now()
	_, err := d.Find(ctx, "FR1234", flightDate)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
