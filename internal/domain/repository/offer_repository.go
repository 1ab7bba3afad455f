package repository

import (
	"context"

	"fare-tracker-service/internal/domain/entity"
)

// OfferRepository looks up upstream fares
type OfferRepository interface {
	FindOffers(ctx context.Context, query entity.OfferQuery) ([]*entity.Offer, error)
}
