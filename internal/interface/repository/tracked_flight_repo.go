package repository

import (
	"context"
	"fmt"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTrackedFlightRepository implements the TrackedFlightRepository interface
type GormTrackedFlightRepository struct {
	db *gorm.DB
}

// NewGormTrackedFlightRepository creates a new GORM tracked flight repository
func NewGormTrackedFlightRepository(db *gorm.DB) repository.TrackedFlightRepository {
	return &GormTrackedFlightRepository{
		db: db,
	}
}

// TrackedFlights GORM model for database mapping
type TrackedFlights struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	OwnerID     int64     `gorm:"column:owner_id;index;index:idx_owner_code,priority:1"`
	Origin      string    `gorm:"column:origin;type:char(3)"`
	Destination string    `gorm:"column:destination;type:char(3)"`
	FlightDate  time.Time `gorm:"column:flight_date;type:date"`
	FlightCode  string    `gorm:"column:flight_code;index:idx_owner_code,priority:2"`
	LastPrice   float64   `gorm:"column:last_price"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (TrackedFlights) TableName() string {
	return "tracked_flights"
}

// AutoMigrate creates or extends the tracked_flights table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&TrackedFlights{})
}

// Create inserts a complete row and fills in the generated ID
func (r *GormTrackedFlightRepository) Create(ctx context.Context, flight *entity.TrackedFlight) error {
	now := time.Now().UTC()
	row := TrackedFlights{
		ID:          uuid.NewString(),
		OwnerID:     flight.OwnerID,
		Origin:      flight.Origin,
		Destination: flight.Destination,
		FlightDate:  flight.Date,
		FlightCode:  flight.FlightCode,
		LastPrice:   flight.LastPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert tracked flight: %w", err)
	}
	flight.ID = row.ID
	flight.CreatedAt = row.CreatedAt
	flight.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByOwner lists an owner's rows, oldest first
func (r *GormTrackedFlightRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*entity.TrackedFlight, error) {
	var rows []TrackedFlights
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTrackedFlights(rows), nil
}

// FindAll lists every row
func (r *GormTrackedFlightRepository) FindAll(ctx context.Context) ([]*entity.TrackedFlight, error) {
	var rows []TrackedFlights
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTrackedFlights(rows), nil
}

// UpdatePrice stores a new baseline price
func (r *GormTrackedFlightRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	result := r.db.WithContext(ctx).Model(&TrackedFlights{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_price": price,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByOwnerAndCode removes every row of the owner with the code
func (r *GormTrackedFlightRepository) DeleteByOwnerAndCode(ctx context.Context, ownerID int64, flightCode string) (int64, error) {
	result := r.db.WithContext(ctx).Where("owner_id = ? AND flight_code = ?", ownerID, flightCode).Delete(&TrackedFlights{})
	return result.RowsAffected, result.Error
}

// DeleteByOwner removes all rows of the owner
func (r *GormTrackedFlightRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&TrackedFlights{})
	return result.RowsAffected, result.Error
}

// Convert GORM models to domain entities
func toTrackedFlights(rows []TrackedFlights) []*entity.TrackedFlight {
	flights := make([]*entity.TrackedFlight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, &entity.TrackedFlight{
			ID:          row.ID,
			OwnerID:     row.OwnerID,
			Origin:      row.Origin,
			Destination: row.Destination,
			Date:        time.Date(row.FlightDate.Year(), row.FlightDate.Month(), row.FlightDate.Day(), 0, 0, 0, 0, time.UTC),
			FlightCode:  row.FlightCode,
			LastPrice:   row.LastPrice,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return flights
}
