package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	venueserrors "venuebook/internal/venues/errors"
	"venuebook/pkg/config"
	"venuebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Venues"
)

type mongoVenueRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type VenueRepository interface {
	FindAllActive(ctx context.Context) ([]*model.Venue, error)
	FindByID(ctx context.Context, id string) (*model.Venue, error)
	Upsert(ctx context.Context, venue *model.Venue) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoVenueRepository(cfg *config.Config) VenueRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVenueRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function, as we cannot wrap SessionContext
// without breaking transaction semantics.
func (r *mongoVenueRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// FindAllActive returns the whole active catalog in insertion order, which
// is the order the seeder wrote it in. ObjectIDs are monotonic, so sorting
// by _id preserves it. The catalog is reference data and small, so filtering
// happens in the service layer.
func (r *mongoVenueRepository) FindAllActive(ctx context.Context) ([]*model.Venue, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find venues: %w", err)
	}
	defer cursor.Close(ctx)

	var venues []*model.Venue
	if err = cursor.All(ctx, &venues); err != nil {
		return nil, fmt.Errorf("failed to decode venues: %w", err)
	}

	return venues, nil
}

func (r *mongoVenueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	var venue model.Venue
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&venue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, venueserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}

	return &venue, nil
}

// Upsert writes a catalog entry keyed by name. Used by the seeder, which must
// be safe to run repeatedly.
func (r *mongoVenueRepository) Upsert(ctx context.Context, venue *model.Venue) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if venue.CreatedAt.IsZero() {
		venue.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	filter := bson.M{"name": venue.Name}
	update := bson.M{
		"$set": bson.M{
			"name":                 venue.Name,
			"location":             venue.Location,
			"capacity":             venue.Capacity,
			"category":             venue.Category,
			"features":             venue.Features,
			"description":          venue.Description,
			"image_urls":           venue.ImageURLs,
			"rules":                venue.Rules,
			"available_time_slots": venue.Slots,
			"active":               venue.Active,
		},
		"$setOnInsert": bson.M{
			"created_at": venue.CreatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert venue: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		venue.ID = oid.Hex()
	}
	return nil
}

func (r *mongoVenueRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}

	return count, nil
}
