package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"

	"github.com/google/uuid"
)

// ErrTrackedFlightNotFound is returned when updating an unknown row
var ErrTrackedFlightNotFound = errors.New("tracked flight not found")

// MemoryTrackedFlightRepository keeps tracked flights in process memory.
// Used for local runs (STORE_DRIVER=memory) and tests.
type MemoryTrackedFlightRepository struct {
	mu      sync.RWMutex
	flights []entity.TrackedFlight
}

// NewMemoryTrackedFlightRepository creates an empty in-memory repository
func NewMemoryTrackedFlightRepository() *MemoryTrackedFlightRepository {
	return &MemoryTrackedFlightRepository{}
}

var _ repository.TrackedFlightRepository = (*MemoryTrackedFlightRepository)(nil)

func (r *MemoryTrackedFlightRepository) Create(ctx context.Context, flight *entity.TrackedFlight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	flight.ID = uuid.NewString()
	flight.CreatedAt = now
	flight.UpdatedAt = now
	r.flights = append(r.flights, *flight)
	return nil
}

func (r *MemoryTrackedFlightRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*entity.TrackedFlight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.TrackedFlight
	for i := range r.flights {
		if r.flights[i].OwnerID == ownerID {
			f := r.flights[i]
			out = append(out, &f)
		}
	}
	return out, nil
}

func (r *MemoryTrackedFlightRepository) FindAll(ctx context.Context) ([]*entity.TrackedFlight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.TrackedFlight, 0, len(r.flights))
	for i := range r.flights {
		f := r.flights[i]
		out = append(out, &f)
	}
	return out, nil
}

func (r *MemoryTrackedFlightRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.flights {
		if r.flights[i].ID == id {
			r.flights[i].LastPrice = price
			r.flights[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrTrackedFlightNotFound
}

func (r *MemoryTrackedFlightRepository) DeleteByOwnerAndCode(ctx context.Context, ownerID int64, flightCode string) (int64, error) {
	return r.deleteWhere(ctx, func(f *entity.TrackedFlight) bool {
		return f.OwnerID == ownerID && f.FlightCode == flightCode
	})
}

func (r *MemoryTrackedFlightRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return r.deleteWhere(ctx, func(f *entity.TrackedFlight) bool {
		return f.OwnerID == ownerID
	})
}

func (r *MemoryTrackedFlightRepository) deleteWhere(ctx context.Context, match func(*entity.TrackedFlight) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.flights[:0]
	var deleted int64
	for i := range r.flights {
		if match(&r.flights[i]) {
			deleted++
			continue
		}
		kept = append(kept, r.flights[i])
	}
	r.flights = kept
	return deleted, nil
}
