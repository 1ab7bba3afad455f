package repository

import (
	"context"

	"fare-tracker-service/internal/domain/entity"
)

// TrackedFlightRepository defines the interface for tracked flight storage.
// Every write touches at most one statement; Create is all-or-nothing.
type TrackedFlightRepository interface {
	Create(ctx context.Context, flight *entity.TrackedFlight) error
	FindByOwner(ctx context.Context, ownerID int64) ([]*entity.TrackedFlight, error)
	FindAll(ctx context.Context) ([]*entity.TrackedFlight, error)
	UpdatePrice(ctx context.Context, id string, price float64) error
	DeleteByOwnerAndCode(ctx context.Context, ownerID int64, flightCode string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
