package repository

import (
	"context"
	"fmt"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTrackedFlightRepository implements TrackedFlightRepository
type MongoTrackedFlightRepository struct {
	collection *mongo.Collection
}

// trackedFlightDocument is the stored shape of a tracked flight
type trackedFlightDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     int64              `bson:"ownerId"`
	Origin      string             `bson:"origin"`
	Destination string             `bson:"destination"`
	Date        string             `bson:"date"` // YYYY-MM-DD
	FlightCode  string             `bson:"flightCode"`
	LastPrice   float64            `bson:"lastPrice"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// NewMongoTrackedFlightRepository creates a new tracked flight repository
func NewMongoTrackedFlightRepository(ctx context.Context, db *mongo.Database) (repository.TrackedFlightRepository, error) {
	collection := db.Collection("tracked_flights")

	// Index on ownerId for list/clear
	ownerIndex := mongo.IndexModel{
		Keys: bson.M{"ownerId": 1},
	}

	// Compound index for delete by code
	ownerCodeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
			{Key: "flightCode", Value: 1},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{ownerIndex, ownerCodeIndex}); err != nil {
		return nil, fmt.Errorf("create tracked_flights indexes: %w", err)
	}

	return &MongoTrackedFlightRepository{
		collection: collection,
	}, nil
}

// Create inserts a flight and fills in the generated ID
func (r *MongoTrackedFlightRepository) Create(ctx context.Context, flight *entity.TrackedFlight) error {
	now := time.Now().UTC()
	doc := trackedFlightDocument{
		ID:          primitive.NewObjectID(),
		OwnerID:     flight.OwnerID,
		Origin:      flight.Origin,
		Destination: flight.Destination,
		Date:        flight.DateString(),
		FlightCode:  flight.FlightCode,
		LastPrice:   flight.LastPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert tracked flight: %w", err)
	}
	flight.ID = doc.ID.Hex()
	flight.CreatedAt = now
	flight.UpdatedAt = now
	return nil
}

// FindByOwner lists an owner's flights, oldest first
func (r *MongoTrackedFlightRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*entity.TrackedFlight, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID})
}

// FindAll lists every flight
func (r *MongoTrackedFlightRepository) FindAll(ctx context.Context) ([]*entity.TrackedFlight, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoTrackedFlightRepository) find(ctx context.Context, filter bson.M) ([]*entity.TrackedFlight, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []trackedFlightDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	flights := make([]*entity.TrackedFlight, 0, len(docs))
	for _, doc := range docs {
		date, err := time.Parse(entity.DateLayout, doc.Date)
		if err != nil {
			return nil, fmt.Errorf("tracked flight %s: bad date %q: %w", doc.ID.Hex(), doc.Date, err)
		}
		flights = append(flights, &entity.TrackedFlight{
			ID:          doc.ID.Hex(),
			OwnerID:     doc.OwnerID,
			Origin:      doc.Origin,
			Destination: doc.Destination,
			Date:        date,
			FlightCode:  doc.FlightCode,
			LastPrice:   doc.LastPrice,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	return flights, nil
}

// UpdatePrice stores a new baseline price
func (r *MongoTrackedFlightRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid tracked flight id %q: %w", id, err)
	}
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"lastPrice": price,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByOwnerAndCode removes every flight of the owner with the code
func (r *MongoTrackedFlightRepository) DeleteByOwnerAndCode(ctx context.Context, ownerID int64, flightCode string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"ownerId": ownerID, "flightCode": flightCode})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByOwner removes all flights of the owner
func (r *MongoTrackedFlightRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
