package service

import (
	"context"
	"testing"
	"time"

	venueserrors "venuebook/internal/venues/errors"
	"venuebook/pkg/config"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock repositories for testing
type mockVenueRepository struct {
	findAllActiveFunc func(ctx context.Context) ([]*model.Venue, error)
	findByIDFunc      func(ctx context.Context, id string) (*model.Venue, error)
}

func (m *mockVenueRepository) FindAllActive(ctx context.Context) ([]*model.Venue, error) {
	if m.findAllActiveFunc != nil {
		return m.findAllActiveFunc(ctx)
	}
	return []*model.Venue{}, nil
}

func (m *mockVenueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, venueserrors.ErrNotFound
}

func (m *mockVenueRepository) Upsert(ctx context.Context, venue *model.Venue) error {
	return nil
}

func (m *mockVenueRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockBlockedDateRepository struct {
	findForVenueFunc func(ctx context.Context, venueID string) ([]*model.BlockedDate, error)
}

func (m *mockBlockedDateRepository) FindForVenue(ctx context.Context, venueID string) ([]*model.BlockedDate, error) {
	if m.findForVenueFunc != nil {
		return m.findForVenueFunc(ctx, venueID)
	}
	return []*model.BlockedDate{}, nil
}

func (m *mockBlockedDateRepository) Upsert(ctx context.Context, blocked *model.BlockedDate) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log:         logger.Discard(),
		ReadTimeout: 5 * time.Second,
	}
}

// catalog mirrors the seeded venues in insertion order, the order the
// repository returns them in.
func catalog() []*model.Venue {
	return []*model.Venue{
		{ID: "1", Name: "Main Auditorium", Location: "Central Campus", Capacity: 500, Category: "Auditorium"},
		{ID: "2", Name: "Conference Room A", Location: "Business Building", Capacity: 50, Category: "Conference Room"},
		{ID: "3", Name: "Sports Hall", Location: "Sports Complex", Capacity: 200, Category: "Sports Venue"},
		{ID: "4", Name: "Study Room 101", Location: "Library", Capacity: 15, Category: "Study Space"},
		{ID: "5", Name: "Computer Lab", Location: "Technology Building", Capacity: 40, Category: "Lab"},
		{ID: "6", Name: "Outdoor Amphitheater", Location: "Arts Quad", Capacity: 300, Category: "Outdoor Space"},
	}
}

func newTestService(repo *mockVenueRepository, blocked *mockBlockedDateRepository) *venueService {
	return &venueService{
		repo:        repo,
		blockedRepo: blocked,
		cfg:         testConfig(),
		now:         func() time.Time { return time.Date(2025, 4, 16, 9, 0, 0, 0, time.UTC) },
	}
}

func TestList_NoFilters(t *testing.T) {
	svc := newTestService(&mockVenueRepository{
		findAllActiveFunc: func(ctx context.Context) ([]*model.Venue, error) {
			return catalog(), nil
		},
	}, &mockBlockedDateRepository{})

	venues, total, err := svc.List(context.Background(), VenueQuery{}, 100, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, venues, 6)

	names := make([]string, 0, len(venues))
	for _, v := range venues {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{
		"Main Auditorium",
		"Conference Room A",
		"Sports Hall",
		"Study Room 101",
		"Computer Lab",
		"Outdoor Amphitheater",
	}, names)
}

func TestList_FiltersCompose(t *testing.T) {
	svc := newTestService(&mockVenueRepository{
		findAllActiveFunc: func(ctx context.Context) ([]*model.Venue, error) {
			return catalog(), nil
		},
	}, &mockBlockedDateRepository{})

	tests := []struct {
		name  string
		query VenueQuery
		want  []string
	}{
		{
			name:  "text matches name or location",
			query: VenueQuery{Text: "room"},
			want:  []string{"Conference Room A", "Study Room 101"},
		},
		{
			name:  "text is case-insensitive",
			query: VenueQuery{Text: "AUDITORIUM"},
			want:  []string{"Main Auditorium"},
		},
		{
			name:  "category sentinel matches all",
			query: VenueQuery{Category: "All"},
			want:  []string{"Main Auditorium", "Conference Room A", "Sports Hall", "Study Room 101", "Computer Lab", "Outdoor Amphitheater"},
		},
		{
			name:  "category exact match",
			query: VenueQuery{Category: "Sports Venue"},
			want:  []string{"Sports Hall"},
		},
		{
			name:  "min capacity threshold",
			query: VenueQuery{MinCapacity: "200"},
			want:  []string{"Main Auditorium", "Sports Hall", "Outdoor Amphitheater"},
		},
		{
			name:  "unparsable threshold means no constraint",
			query: VenueQuery{MinCapacity: "lots"},
			want:  []string{"Main Auditorium", "Conference Room A", "Sports Hall", "Study Room 101", "Computer Lab", "Outdoor Amphitheater"},
		},
		{
			name:  "all filters AND together",
			query: VenueQuery{Text: "hall", Category: "Sports Venue", MinCapacity: "100"},
			want:  []string{"Sports Hall"},
		},
		{
			name:  "conjunction can be empty",
			query: VenueQuery{Text: "hall", Category: "Lab"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venues, total, err := svc.List(context.Background(), tt.query, 100, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			names := make([]string, 0, len(venues))
			for _, v := range venues {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestList_Pagination(t *testing.T) {
	svc := newTestService(&mockVenueRepository{
		findAllActiveFunc: func(ctx context.Context) ([]*model.Venue, error) {
			return catalog(), nil
		},
	}, &mockBlockedDateRepository{})

	venues, total, err := svc.List(context.Background(), VenueQuery{}, 2, 4)

	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, venues, 2)
	assert.Equal(t, "Computer Lab", venues[0].Name)
	assert.Equal(t, "Outdoor Amphitheater", venues[1].Name)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockVenueRepository{}, &mockBlockedDateRepository{})

	_, err := svc.GetByID(context.Background(), "64f000000000000000000000")

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetAvailability(t *testing.T) {
	venue := &model.Venue{
		ID:    "3",
		Name:  "Main Auditorium",
		Slots: []model.TimeSlot{model.SlotMorning, model.SlotAfternoon, model.SlotEvening},
	}

	// Service clock is Wednesday 2025-04-16.
	blockedFriday := time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)

	svc := newTestService(
		&mockVenueRepository{
			findByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
				return venue, nil
			},
		},
		&mockBlockedDateRepository{
			findForVenueFunc: func(ctx context.Context, venueID string) ([]*model.BlockedDate, error) {
				return []*model.BlockedDate{{Date: blockedFriday, Reason: "Maintenance"}}, nil
			},
		},
	)

	tests := []struct {
		name       string
		date       time.Time
		selectable bool
		reason     string
	}{
		{"selectable weekday", time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC), true, "selectable"},
		{"past date", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), false, "past_date"},
		{"weekend", time.Date(2025, 4, 19, 0, 0, 0, 0, time.UTC), false, "weekend"},
		{"blocked date", blockedFriday, false, "blocked_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := svc.GetAvailability(context.Background(), "3", tt.date)
			require.NoError(t, err)

			assert.Equal(t, tt.selectable, day.Selectable)
			assert.Equal(t, tt.reason, day.Reason)
			if tt.selectable {
				assert.Equal(t, venue.Slots, day.Slots)
			} else {
				assert.Empty(t, day.Slots)
			}
		})
	}
}
