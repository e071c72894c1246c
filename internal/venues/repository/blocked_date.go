package repository

import (
	"context"
	"fmt"
	"time"

	"venuebook/pkg/config"
	"venuebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BlockedDatesCollection = "Blocked_dates"
)

// BlockedDateRepository stores calendar dates closed for booking. Entries
// with an empty venue_id apply to every venue.
type BlockedDateRepository interface {
	FindForVenue(ctx context.Context, venueID string) ([]*model.BlockedDate, error)
	Upsert(ctx context.Context, blocked *model.BlockedDate) error
}

type mongoBlockedDateRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBlockedDateRepository(cfg *config.Config) BlockedDateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBlockedDateRepository{
		cfg:        cfg,
		collection: db.Collection(BlockedDatesCollection),
	}
}

// FindForVenue returns global entries plus entries scoped to the venue.
func (r *mongoBlockedDateRepository) FindForVenue(ctx context.Context, venueID string) ([]*model.BlockedDate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"venue_id": bson.M{"$in": []any{"", nil}}},
			{"venue_id": venueID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find blocked dates: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []*model.BlockedDate
	if err = cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("failed to decode blocked dates: %w", err)
	}

	return blocked, nil
}

func (r *mongoBlockedDateRepository) Upsert(ctx context.Context, blocked *model.BlockedDate) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if blocked.CreatedAt.IsZero() {
		blocked.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	filter := bson.M{
		"venue_id": blocked.VenueID,
		"date":     blocked.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"reason": blocked.Reason,
		},
		"$setOnInsert": bson.M{
			"venue_id":   blocked.VenueID,
			"date":       blocked.Date,
			"created_at": blocked.CreatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert blocked date: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		blocked.ID = oid.Hex()
	}
	return nil
}
