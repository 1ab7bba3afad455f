package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fare-tracker-service/internal/domain/entity"
)

func newFlight(owner int64, code string, price float64) *entity.TrackedFlight {
	return &entity.TrackedFlight{
		OwnerID:     owner,
		Origin:      "VNO",
		Destination: "BVA",
		Date:        time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		FlightCode:  code,
		LastPrice:   price,
	}
}

func TestMemoryTrackedFlightRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTrackedFlightRepository()

	f := newFlight(1, "FR 1234", 59.99)
	require.NoError(t, repo.Create(ctx, f))
	assert.NotEmpty(t, f.ID)
	assert.False(t, f.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, newFlight(2, "FR 5678", 20)))

	mine, err := repo.FindByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "FR 1234", mine[0].FlightCode)
	assert.Equal(t, 59.99, mine[0].LastPrice)

	// returned rows are copies
	mine[0].LastPrice = 1
	again, err := repo.FindByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 59.99, again[0].LastPrice)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryTrackedFlightRepository_UpdatePrice(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTrackedFlightRepository()

	f := newFlight(1, "FR 1234", 100)
	require.NoError(t, repo.Create(ctx, f))
	require.NoError(t, repo.UpdatePrice(ctx, f.ID, 120))

	rows, err := repo.FindByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 120.0, rows[0].LastPrice)

	assert.ErrorIs(t, repo.UpdatePrice(ctx, "missing", 1), ErrTrackedFlightNotFound)
}

func TestMemoryTrackedFlightRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTrackedFlightRepository()

	require.NoError(t, repo.Create(ctx, newFlight(1, "FR 1234", 10)))
	require.NoError(t, repo.Create(ctx, newFlight(1, "FR 1234", 11)))
	require.NoError(t, repo.Create(ctx, newFlight(1, "FR 5678", 12)))
	require.NoError(t, repo.Create(ctx, newFlight(2, "FR 1234", 13)))

	n, err := repo.DeleteByOwnerAndCode(ctx, 1, "FR 9999")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteByOwnerAndCode(ctx, 1, "FR 1234")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), all[0].OwnerID)
}

func TestMemoryTrackedFlightRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryTrackedFlightRepository()
	assert.ErrorIs(t, repo.Create(ctx, newFlight(1, "FR 1234", 10)), context.Canceled)
	_, err := repo.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
