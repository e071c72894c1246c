package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "venuebook/internal/bookings/errors"
	"venuebook/pkg/config"
	mongotx "venuebook/pkg/db/mongo"
	"venuebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Booking_requests"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.BookingRequest) error
	FindByID(ctx context.Context, id string) (*model.BookingRequest, error)
	FindAll(ctx context.Context) ([]*model.BookingRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]*model.BookingRequest, error)
	UpdateDecision(ctx context.Context, id string, status model.BookingStatus, decidedBy string, decidedAt time.Time) error
	ExistsApproved(ctx context.Context, venueID string, date time.Time, slot model.TimeSlot) (bool, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function, as we cannot wrap SessionContext
// without breaking transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.BookingRequest) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.BookingRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking request: %w", err)
	}

	return &booking, nil
}

// FindAll returns every booking request, newest first. Text and status
// filtering happen in the service layer.
func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.BookingRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepository) FindByRequester(ctx context.Context, requesterID string) ([]*model.BookingRequest, error) {
	return r.find(ctx, bson.M{"requester_id": requesterID})
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.BookingRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking requests: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.BookingRequest
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking requests: %w", err)
	}

	return bookings, nil
}

// UpdateDecision flips a pending request to a terminal status. The pending
// precondition is part of the update filter, so a raced decision matches
// nothing instead of overwriting the earlier one.
func (r *mongoBookingRepository) UpdateDecision(ctx context.Context, id string, status model.BookingStatus, decidedBy string, decidedAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": model.StatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking request: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotPending
	}

	return nil
}

// ExistsApproved reports whether an approved request already holds the
// (venue, date, slot) triple.
func (r *mongoBookingRepository) ExistsApproved(ctx context.Context, venueID string, date time.Time, slot model.TimeSlot) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"venue_id":  venueID,
		"time_slot": slot,
		"status":    model.StatusApproved,
		"date": bson.M{
			"$gte": dayStart,
			"$lt":  dayEnd,
		},
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check approved bookings: %w", err)
	}

	return count > 0, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
