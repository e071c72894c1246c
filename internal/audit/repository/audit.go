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
	CollectionName = "Audit_log"
)

type AuditRepository interface {
	Record(ctx context.Context, entry *model.AuditEntry) error
	FindByBookingID(ctx context.Context, bookingID string) ([]*model.AuditEntry, error)
}

type mongoAuditRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditRepository(cfg *config.Config) AuditRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// Record writes one entry per event. The event_id filter makes redelivered
// messages idempotent.
func (r *mongoAuditRepository) Record(ctx context.Context, entry *model.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.RecordedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"event_id": entry.EventID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"event_id":    entry.EventID,
			"event_type":  entry.EventType,
			"booking_id":  entry.BookingID,
			"venue_id":    entry.VenueID,
			"actor_id":    entry.ActorID,
			"status":      entry.Status,
			"occurred_at": entry.OccurredAt,
			"recorded_at": entry.RecordedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAuditRepository) FindByBookingID(ctx context.Context, bookingID string) ([]*model.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.AuditEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, nil
}
