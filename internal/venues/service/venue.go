package service

import (
	"context"
	"errors"
	"time"

	"venuebook/internal/availability"
	venueserrors "venuebook/internal/venues/errors"
	"venuebook/internal/venues/repository"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/filter"
	"venuebook/pkg/model"
	"venuebook/pkg/sanitizer"
)

// VenueQuery carries the catalog list filters as they arrive on the wire.
// Zero values (and the category sentinel) mean "no constraint".
type VenueQuery struct {
	Text        string
	Category    string
	MinCapacity string
}

// DayAvailability is the answer to "can this venue be booked on this date".
// Slots is empty whenever Selectable is false.
type DayAvailability struct {
	VenueID    string           `json:"venue_id"`
	Date       string           `json:"date"`
	Selectable bool             `json:"selectable"`
	Reason     string           `json:"reason"`
	Slots      []model.TimeSlot `json:"available_time_slots"`
}

type VenueService interface {
	List(ctx context.Context, query VenueQuery, limit int, offset int64) ([]*model.Venue, int64, error)
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	GetAvailability(ctx context.Context, venueID string, date time.Time) (*DayAvailability, error)
}

type venueService struct {
	repo        repository.VenueRepository
	blockedRepo repository.BlockedDateRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewVenueService(
	repo repository.VenueRepository,
	blockedRepo repository.BlockedDateRepository,
	cfg *config.Config,
) VenueService {
	return &venueService{
		repo:        repo,
		blockedRepo: blockedRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// List loads the active catalog and applies the query predicates in memory.
// Filters compose with AND; result order follows the catalog order.
func (s *venueService) List(ctx context.Context, query VenueQuery, limit int, offset int64) ([]*model.Venue, int64, error) {
	venues, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list venues", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve venues", err)
	}

	matched := filter.Apply(venues, filter.And(
		filter.Text(sanitizer.NormalizeQuery(query.Text),
			func(v *model.Venue) string { return v.Name },
			func(v *model.Venue) string { return v.Location },
		),
		filter.Enum(query.Category, model.CategoryAll,
			func(v *model.Venue) string { return v.Category },
		),
		filter.MinThreshold(query.MinCapacity,
			func(v *model.Venue) int { return v.Capacity },
		),
	))

	total := int64(len(matched))
	page := paginate(matched, limit, offset)

	s.cfg.Log.Debug("Venue list completed",
		"query", query.Text,
		"category", query.Category,
		"count", len(page),
		"total_count", total,
	)
	return page, total, nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, venueserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve venue", err)
	}

	return venue, nil
}

// GetAvailability evaluates the booking calendar rule for one venue and date.
// "Today" is taken once here so the rule itself stays clock-free.
func (s *venueService) GetAvailability(ctx context.Context, venueID string, date time.Time) (*DayAvailability, error) {
	venue, err := s.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	entries, err := s.blockedRepo.FindForVenue(ctx, venue.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to load blocked dates", "venue_id", venue.ID, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	blocked := availability.NewBlockedSet(dates)

	today := s.now()
	reason := availability.Evaluate(date, today, blocked)

	result := &DayAvailability{
		VenueID:    venue.ID,
		Date:       date.Format(model.DateLayout),
		Selectable: reason == availability.Selectable,
		Reason:     reason.String(),
		Slots:      []model.TimeSlot{},
	}
	if result.Selectable {
		result.Slots = venue.Slots
	}

	return result, nil
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
