package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "venuebook/internal/bookings/errors"
	"venuebook/internal/bookings/repository"
	"venuebook/internal/bookings/validator"
	"venuebook/internal/events"
	venueservice "venuebook/internal/venues/service"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/filter"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// BookingQuery carries the list filters. Scope "all" is admin-only; the
// default scope is the caller's own requests.
type BookingQuery struct {
	Text   string
	Status string
	Scope  string
}

type BookingService interface {
	Submit(ctx context.Context, principal model.Principal, booking *model.BookingRequest) error
	GetByID(ctx context.Context, principal model.Principal, id string) (*model.BookingRequest, error)
	List(ctx context.Context, principal model.Principal, query BookingQuery, limit int, offset int64) ([]*model.BookingRequest, int64, error)
	Decide(ctx context.Context, principal model.Principal, id string, decision string) (*model.BookingRequest, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	venues    venueservice.VenueService
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	venues venueservice.VenueService,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		venues:    venues,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Submit runs the request through the availability and capacity checks, then
// creates it as pending. An advisory lock on the (venue, date, slot) triple
// serializes concurrent submissions for the same slot.
func (s *bookingService) Submit(ctx context.Context, principal model.Principal, booking *model.BookingRequest) error {
	if principal.UserID == "" {
		return apperrors.Unauthorized("Authentication required to submit a booking request")
	}

	venue, err := s.venues.GetByID(ctx, booking.VenueID)
	if err != nil {
		return err
	}

	if !venue.Active {
		return apperrors.FieldValidation("VenueID", "venue is not open for booking")
	}

	day, err := s.venues.GetAvailability(ctx, venue.ID, booking.Date)
	if err != nil {
		return err
	}
	if !day.Selectable {
		return apperrors.FieldValidation("Date", fmt.Sprintf("date is not selectable (%s)", day.Reason))
	}

	if !venue.OffersSlot(booking.Slot) {
		return apperrors.FieldValidation("TimeSlot", fmt.Sprintf("venue does not offer the %s slot", booking.Slot))
	}

	if booking.Attendees > venue.Capacity {
		return apperrors.FieldValidation("Attendees", fmt.Sprintf("attendees count (%d) exceeds venue capacity (%d)", booking.Attendees, venue.Capacity))
	}

	s.sanitize(booking)
	booking.RequesterID = principal.UserID
	booking.RequesterName = principal.Name
	booking.VenueName = venue.Name
	booking.Status = model.StatusPending
	booking.DecidedBy = ""
	booking.DecidedAt = nil

	if err := s.validate(booking); err != nil {
		return err
	}

	lockID, err := s.acquireSlotLock(ctx, booking)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		taken, err := s.repo.ExistsApproved(sessCtx, booking.VenueID, booking.Date, booking.Slot)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if taken {
			return apperrors.Conflict(fmt.Sprintf(
				"The %s slot on %s is already booked for this venue",
				booking.Slot, booking.Date.Format(model.DateLayout),
			))
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking request", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to submit booking request", "error", err)
		return err
	}

	s.publish(ctx, events.TypeBookingSubmitted, booking, principal.UserID)

	s.cfg.Log.Info("Booking request submitted",
		"id", booking.ID,
		"venue_id", booking.VenueID,
		"date", booking.Date.Format(model.DateLayout),
		"time_slot", booking.Slot,
		"requester_id", booking.RequesterID,
	)
	return nil
}

// GetByID returns a single request. Regular users may only read their own.
func (s *bookingService) GetByID(ctx context.Context, principal model.Principal, id string) (*model.BookingRequest, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking request ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking request", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking request ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking request", err)
	}

	if !principal.IsAdmin() && booking.RequesterID != principal.UserID {
		return nil, apperrors.Forbidden("You may only view your own booking requests")
	}

	return booking, nil
}

// List loads the caller's scope and applies the query predicates in memory.
// Results keep the repository order (newest first).
func (s *bookingService) List(ctx context.Context, principal model.Principal, query BookingQuery, limit int, offset int64) ([]*model.BookingRequest, int64, error) {
	if principal.UserID == "" {
		return nil, 0, apperrors.Unauthorized("Authentication required to list booking requests")
	}

	var bookings []*model.BookingRequest
	var err error

	switch query.Scope {
	case "all":
		if !principal.IsAdmin() {
			return nil, 0, apperrors.Forbidden("Only admins may list all booking requests")
		}
		bookings, err = s.repo.FindAll(ctx)
	default:
		bookings, err = s.repo.FindByRequester(ctx, principal.UserID)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list booking requests", "scope", query.Scope, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve booking requests", err)
	}

	matched := filter.Apply(bookings, filter.And(
		filter.Text(sanitizer.NormalizeQuery(query.Text),
			func(b *model.BookingRequest) string { return b.Title },
			func(b *model.BookingRequest) string { return b.VenueName },
			func(b *model.BookingRequest) string { return b.RequesterName },
		),
		filter.Enum(query.Status, model.StatusAll,
			func(b *model.BookingRequest) string { return string(b.Status) },
		),
	))

	total := int64(len(matched))
	page := paginate(matched, limit, offset)

	s.cfg.Log.Debug("Booking request list completed",
		"scope", query.Scope,
		"status", query.Status,
		"count", len(page),
		"total_count", total,
	)
	return page, total, nil
}

// Decide flips a pending request to approved or rejected. The pending check
// runs again inside the transaction so a raced decision loses cleanly, and
// approving re-verifies that no approved request already holds the slot.
func (s *bookingService) Decide(ctx context.Context, principal model.Principal, id string, decision string) (*model.BookingRequest, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins may decide booking requests")
	}

	var status model.BookingStatus
	switch decision {
	case DecisionApprove:
		status = model.StatusApproved
	case DecisionReject:
		status = model.StatusRejected
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("decision must be %q or %q", DecisionApprove, DecisionReject))
	}

	booking, err := s.GetByID(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, booking)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	decidedAt := time.Now().UTC().Truncate(time.Millisecond)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking request", id)
			}
			return apperrors.Internal("Failed to re-read booking request", err)
		}
		if current.Status != model.StatusPending {
			return apperrors.InvalidTransition(fmt.Sprintf(
				"Booking request is already %s and cannot be decided again", current.Status,
			))
		}

		if status == model.StatusApproved {
			taken, err := s.repo.ExistsApproved(sessCtx, current.VenueID, current.Date, current.Slot)
			if err != nil {
				return apperrors.Internal("Failed to check existing bookings", err)
			}
			if taken {
				return apperrors.Conflict(fmt.Sprintf(
					"The %s slot on %s is already booked for this venue",
					current.Slot, current.Date.Format(model.DateLayout),
				))
			}
		}

		if err := s.repo.UpdateDecision(sessCtx, id, status, principal.UserID, decidedAt); err != nil {
			if errors.Is(err, bookingserrors.ErrNotPending) {
				return apperrors.InvalidTransition("Booking request is no longer pending")
			}
			return apperrors.Internal("Failed to update booking request", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to decide booking request", "id", id, "decision", decision, "error", err)
		return nil, err
	}

	booking.Status = status
	booking.DecidedBy = principal.UserID
	booking.DecidedAt = &decidedAt

	eventType := events.TypeBookingApproved
	if status == model.StatusRejected {
		eventType = events.TypeBookingRejected
	}
	s.publish(ctx, eventType, booking, principal.UserID)

	s.cfg.Log.Info("Booking request decided",
		"id", id,
		"decision", decision,
		"decided_by", principal.UserID,
	)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.BookingRequest) {
	b.Title = sanitizer.NormalizeName(b.Title)
	b.Description = sanitizer.TrimAndNormalize(b.Description)
}

func (s *bookingService) validate(booking *model.BookingRequest) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return apperrors.FieldValidation(validationErrs[0].Field, validationErrs[0].Message)
		}
		return apperrors.Validation("Booking request validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// acquireSlotLock creates an advisory lock keyed by the booking's slot triple.
// Returns the lock ID if successful, or conflict error if lock already exists.
func (s *bookingService) acquireSlotLock(ctx context.Context, booking *model.BookingRequest) (string, error) {
	lock := &model.SlotLock{
		ID:        booking.SlotKey(),
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being processed by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lock.ID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publish emits a lifecycle event. The booking write has already committed,
// so a publish failure is logged, not surfaced to the caller.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.BookingRequest, actorID string) {
	event := events.BookingEvent{
		BookingID:  booking.ID,
		VenueID:    booking.VenueID,
		VenueName:  booking.VenueName,
		Date:       booking.Date.Format(model.DateLayout),
		Slot:       booking.Slot,
		ActorID:    actorID,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func paginate[T any](items []T, limit int, offset int64) []T {
	if offset >= int64(len(items)) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
