package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "venuebook/internal/bookings/errors"
	"venuebook/internal/bookings/repository"
	"venuebook/internal/bookings/validator"
	"venuebook/internal/events"
	venueservice "venuebook/internal/venues/service"
	"venuebook/pkg/config"
	mongotx "venuebook/pkg/db/mongo"
	apperrors "venuebook/pkg/errors"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mock repositories for testing
type mockBookingRepository struct {
	createFunc          func(ctx context.Context, booking *model.BookingRequest) error
	findByIDFunc        func(ctx context.Context, id string) (*model.BookingRequest, error)
	findAllFunc         func(ctx context.Context) ([]*model.BookingRequest, error)
	findByRequesterFunc func(ctx context.Context, requesterID string) ([]*model.BookingRequest, error)
	updateDecisionFunc  func(ctx context.Context, id string, status model.BookingStatus, decidedBy string, decidedAt time.Time) error
	existsApprovedFunc  func(ctx context.Context, venueID string, date time.Time, slot model.TimeSlot) (bool, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.BookingRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "64f000000000000000000099"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.BookingRequest, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.BookingRequest{}, nil
}

func (m *mockBookingRepository) FindByRequester(ctx context.Context, requesterID string) ([]*model.BookingRequest, error) {
	if m.findByRequesterFunc != nil {
		return m.findByRequesterFunc(ctx, requesterID)
	}
	return []*model.BookingRequest{}, nil
}

func (m *mockBookingRepository) UpdateDecision(ctx context.Context, id string, status model.BookingStatus, decidedBy string, decidedAt time.Time) error {
	if m.updateDecisionFunc != nil {
		return m.updateDecisionFunc(ctx, id, status, decidedBy, decidedAt)
	}
	return nil
}

func (m *mockBookingRepository) ExistsApproved(ctx context.Context, venueID string, date time.Time, slot model.TimeSlot) (bool, error) {
	if m.existsApprovedFunc != nil {
		return m.existsApprovedFunc(ctx, venueID, date, slot)
	}
	return false, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleted    []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockVenueService struct {
	venue      *model.Venue
	selectable bool
	reason     string
}

func (m *mockVenueService) List(ctx context.Context, query venueservice.VenueQuery, limit int, offset int64) ([]*model.Venue, int64, error) {
	return nil, 0, nil
}

func (m *mockVenueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if m.venue == nil {
		return nil, apperrors.NotFoundWithID("Venue", id)
	}
	return m.venue, nil
}

func (m *mockVenueService) GetAvailability(ctx context.Context, venueID string, date time.Time) (*venueservice.DayAvailability, error) {
	return &venueservice.DayAvailability{
		VenueID:    venueID,
		Date:       date.Format(model.DateLayout),
		Selectable: m.selectable,
		Reason:     m.reason,
	}, nil
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, event events.BookingEvent) error {
	m.published = append(m.published, eventType)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

// --- Fixtures ---

const (
	userID  = "64f000000000000000000001"
	adminID = "64f000000000000000000002"
	venueID = "64f000000000000000000010"
)

var (
	userPrincipal  = model.Principal{UserID: userID, Name: "Sam Lee", Email: "user@example.com", Role: model.RoleUser}
	adminPrincipal = model.Principal{UserID: adminID, Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
)

func testVenue() *model.Venue {
	return &model.Venue{
		ID:       venueID,
		Name:     "Conference Room A",
		Location: "Business Building",
		Capacity: 50,
		Category: "Conference Room",
		Slots:    []model.TimeSlot{model.SlotMorning, model.SlotAfternoon},
		Active:   true,
	}
}

func validSubmission() *model.BookingRequest {
	return &model.BookingRequest{
		VenueID:     venueID,
		Date:        time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC),
		Slot:        model.SlotMorning,
		Title:       "Team planning session",
		Description: "Quarterly planning for the engineering team",
		Attendees:   12,
	}
}

type fixture struct {
	svc       *bookingService
	repo      *mockBookingRepository
	lockRepo  *mockSlotLockRepository
	venues    *mockVenueService
	publisher *mockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.Discard()
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		SlotLockTTL:  10 * time.Second,
	}

	f := &fixture{
		repo:      &mockBookingRepository{},
		lockRepo:  &mockSlotLockRepository{},
		venues:    &mockVenueService{venue: testVenue(), selectable: true, reason: "selectable"},
		publisher: &mockPublisher{},
	}
	f.svc = &bookingService{
		repo:      f.repo,
		lockRepo:  f.lockRepo,
		venues:    f.venues,
		validator: validator.NewBookingValidator(log),
		publisher: f.publisher,
		cfg:       cfg,
	}
	return f
}

var _ repository.BookingRepository = (*mockBookingRepository)(nil)
var _ repository.SlotLockRepository = (*mockSlotLockRepository)(nil)
var _ venueservice.VenueService = (*mockVenueService)(nil)
var _ events.Publisher = (*mockPublisher)(nil)

// --- Submit ---

func TestSubmit_HappyPath(t *testing.T) {
	f := newFixture(t)
	booking := validSubmission()

	err := f.svc.Submit(context.Background(), userPrincipal, booking)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, userID, booking.RequesterID)
	assert.Equal(t, "Sam Lee", booking.RequesterName)
	assert.Equal(t, "Conference Room A", booking.VenueName)
	assert.Empty(t, booking.DecidedBy)
	assert.Nil(t, booking.DecidedAt)
	assert.Equal(t, []string{events.TypeBookingSubmitted}, f.publisher.published)
	assert.Equal(t, []string{booking.SlotKey()}, f.lockRepo.deleted)
}

func TestSubmit_RequiresAuthentication(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Submit(context.Background(), model.Principal{}, validSubmission())

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}

func TestSubmit_UnselectableDate(t *testing.T) {
	f := newFixture(t)
	f.venues.selectable = false
	f.venues.reason = "weekend"

	err := f.svc.Submit(context.Background(), userPrincipal, validSubmission())

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, "Date", appErr.Details["field"])
}

func TestSubmit_SlotNotOffered(t *testing.T) {
	f := newFixture(t)
	booking := validSubmission()
	booking.Slot = model.SlotEvening

	err := f.svc.Submit(context.Background(), userPrincipal, booking)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, "TimeSlot", appErr.Details["field"])
}

func TestSubmit_AttendeesEqualCapacity(t *testing.T) {
	f := newFixture(t)
	booking := validSubmission()
	booking.Attendees = 50

	err := f.svc.Submit(context.Background(), userPrincipal, booking)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, booking.Status)
}

func TestSubmit_AttendeesExceedCapacity(t *testing.T) {
	f := newFixture(t)
	booking := validSubmission()
	booking.Attendees = 51

	err := f.svc.Submit(context.Background(), userPrincipal, booking)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, "Attendees", appErr.Details["field"])
}

func TestSubmit_FieldValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
		field  string
	}{
		{"short title", func(b *model.BookingRequest) { b.Title = "ab" }, "Title"},
		{"short description", func(b *model.BookingRequest) { b.Description = "too short" }, "Description"},
		{"zero attendees", func(b *model.BookingRequest) { b.Attendees = 0 }, "Attendees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := validSubmission()
			tt.mutate(booking)

			err := f.svc.Submit(context.Background(), userPrincipal, booking)

			appErr := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestSubmit_InactiveVenue(t *testing.T) {
	f := newFixture(t)
	f.venues.venue.Active = false

	err := f.svc.Submit(context.Background(), userPrincipal, validSubmission())

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, "VenueID", appErr.Details["field"])
}

func TestSubmit_ApprovedTripleConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.existsApprovedFunc = func(ctx context.Context, venueID string, date time.Time, slot model.TimeSlot) (bool, error) {
		return true, nil
	}

	err := f.svc.Submit(context.Background(), userPrincipal, validSubmission())

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, f.publisher.published)
}

// --- GetByID ---

func TestGetByID_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
		return &model.BookingRequest{ID: id, RequesterID: adminID, Status: model.StatusPending}, nil
	}

	_, err := f.svc.GetByID(context.Background(), userPrincipal, "64f000000000000000000099")

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestGetByID_AdminMayReadAny(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
		return &model.BookingRequest{ID: id, RequesterID: userID, Status: model.StatusPending}, nil
	}

	booking, err := f.svc.GetByID(context.Background(), adminPrincipal, "64f000000000000000000099")

	require.NoError(t, err)
	assert.Equal(t, userID, booking.RequesterID)
}

// --- List ---

func listFixtures() []*model.BookingRequest {
	return []*model.BookingRequest{
		{ID: "1", RequesterID: userID, RequesterName: "Sam Lee", VenueName: "Sports Hall", Title: "Basketball practice", Status: model.StatusPending},
		{ID: "2", RequesterID: userID, RequesterName: "Sam Lee", VenueName: "Conference Room A", Title: "Sprint review", Status: model.StatusApproved},
		{ID: "3", RequesterID: adminID, RequesterName: "Admin", VenueName: "Main Auditorium", Title: "Graduation ceremony", Status: model.StatusRejected},
	}
}

func TestList_ScopeAllRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.List(context.Background(), userPrincipal, BookingQuery{Scope: "all"}, 100, 0)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestList_OwnScope(t *testing.T) {
	f := newFixture(t)
	f.repo.findByRequesterFunc = func(ctx context.Context, requesterID string) ([]*model.BookingRequest, error) {
		var own []*model.BookingRequest
		for _, b := range listFixtures() {
			if b.RequesterID == requesterID {
				own = append(own, b)
			}
		}
		return own, nil
	}

	bookings, total, err := f.svc.List(context.Background(), userPrincipal, BookingQuery{}, 100, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, bookings, 2)
}

func TestList_StatusAndTextFilters(t *testing.T) {
	f := newFixture(t)
	f.repo.findAllFunc = func(ctx context.Context) ([]*model.BookingRequest, error) {
		return listFixtures(), nil
	}

	tests := []struct {
		name  string
		query BookingQuery
		want  []string
	}{
		{"status filter", BookingQuery{Scope: "all", Status: "pending"}, []string{"1"}},
		{"status sentinel", BookingQuery{Scope: "all", Status: "all"}, []string{"1", "2", "3"}},
		{"text over title", BookingQuery{Scope: "all", Text: "sprint"}, []string{"2"}},
		{"text over venue name", BookingQuery{Scope: "all", Text: "auditorium"}, []string{"3"}},
		{"text over requester name", BookingQuery{Scope: "all", Text: "sam"}, []string{"1", "2"}},
		{"status and text compose", BookingQuery{Scope: "all", Status: "approved", Text: "sam"}, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, total, err := f.svc.List(context.Background(), adminPrincipal, tt.query, 100, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)

			ids := make([]string, 0, len(bookings))
			for _, b := range bookings {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// --- Decide ---

func pendingBooking() *model.BookingRequest {
	b := validSubmission()
	b.ID = "64f000000000000000000099"
	b.RequesterID = userID
	b.RequesterName = "Sam Lee"
	b.VenueName = "Conference Room A"
	b.Status = model.StatusPending
	return b
}

func TestDecide_RequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Decide(context.Background(), userPrincipal, "64f000000000000000000099", DecisionApprove)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestDecide_UnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", DecisionApprove)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestDecide_InvalidDecision(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", "maybe")

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
}

func TestDecide_Approve(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
		return pendingBooking(), nil
	}

	booking, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", DecisionApprove)

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, booking.Status)
	assert.Equal(t, adminID, booking.DecidedBy)
	require.NotNil(t, booking.DecidedAt)
	assert.Equal(t, []string{events.TypeBookingApproved}, f.publisher.published)
}

func TestDecide_Reject(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
		return pendingBooking(), nil
	}

	booking, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", DecisionReject)

	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, booking.Status)
	assert.Equal(t, []string{events.TypeBookingRejected}, f.publisher.published)
}

func TestDecide_TerminalStateIsFinal(t *testing.T) {
	for _, status := range []model.BookingStatus{model.StatusApproved, model.StatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
				b := pendingBooking()
				b.Status = status
				return b, nil
			}

			_, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", DecisionReject)

			appErr := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
			assert.Empty(t, f.publisher.published)
		})
	}
}

func TestDecide_RacedDecisionLoses(t *testing.T) {
	// First read sees pending; the transactional re-read sees the raced
	// approval and must refuse the transition.
	f := newFixture(t)
	reads := 0
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
		b := pendingBooking()
		reads++
		if reads > 1 {
			b.Status = model.StatusApproved
		}
		return b, nil
	}

	_, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", DecisionApprove)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func TestDecide_ApproveConflictsWithHeldSlot(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.BookingRequest, error) {
		return pendingBooking(), nil
	}
	f.repo.existsApprovedFunc = func(ctx context.Context, venueID string, date time.Time, slot model.TimeSlot) (bool, error) {
		return true, nil
	}

	_, err := f.svc.Decide(context.Background(), adminPrincipal, "64f000000000000000000099", DecisionApprove)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, f.publisher.published)
}

func TestSubmit_SlotLockHeld(t *testing.T) {
	f := newFixture(t)
	f.lockRepo.createFunc = func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}

	err := f.svc.Submit(context.Background(), userPrincipal, validSubmission())

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}
