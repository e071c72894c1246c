package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"venuebook/internal/events"
	"venuebook/pkg/kafka"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuditRepository struct {
	recordFunc func(ctx context.Context, entry *model.AuditEntry) error
	recorded   []*model.AuditEntry
}

func (m *mockAuditRepository) Record(ctx context.Context, entry *model.AuditEntry) error {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, entry)
	}
	m.recorded = append(m.recorded, entry)
	return nil
}

func (m *mockAuditRepository) FindByBookingID(ctx context.Context, bookingID string) ([]*model.AuditEntry, error) {
	return nil, nil
}

func eventMessage(t *testing.T) kafka.Message {
	t.Helper()

	payload, err := json.Marshal(events.BookingEvent{
		BookingID:  "64f000000000000000000099",
		VenueID:    "64f000000000000000000010",
		VenueName:  "Conference Room A",
		Date:       "2025-04-17",
		Slot:       model.SlotMorning,
		ActorID:    "64f000000000000000000002",
		Status:     model.StatusApproved,
		OccurredAt: time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return kafka.Message{
		Key:   "64f000000000000000000010",
		Value: payload,
		Headers: map[string]string{
			kafka.HeaderEventID:   "evt-1",
			kafka.HeaderEventType: events.TypeBookingApproved,
		},
	}
}

func TestHandleMessage(t *testing.T) {
	repo := &mockAuditRepository{}
	recorder := NewRecorder(repo, logger.Discard())

	err := recorder.HandleMessage(context.Background(), eventMessage(t))

	require.NoError(t, err)
	require.Len(t, repo.recorded, 1)
	entry := repo.recorded[0]
	assert.Equal(t, "evt-1", entry.EventID)
	assert.Equal(t, events.TypeBookingApproved, entry.EventType)
	assert.Equal(t, "64f000000000000000000099", entry.BookingID)
	assert.Equal(t, string(model.StatusApproved), entry.Status)
}

func TestHandleMessage_MalformedPayloadIsPermanent(t *testing.T) {
	recorder := NewRecorder(&mockAuditRepository{}, logger.Discard())

	msg := eventMessage(t)
	msg.Value = []byte("{not json")

	err := recorder.HandleMessage(context.Background(), msg)

	var kafkaErr *kafka.KafkaError
	require.ErrorAs(t, err, &kafkaErr)
	assert.True(t, kafkaErr.IsPermanent())
}

func TestHandleMessage_StorageFailureIsTransient(t *testing.T) {
	repo := &mockAuditRepository{
		recordFunc: func(ctx context.Context, entry *model.AuditEntry) error {
			return errors.New("connection reset")
		},
	}
	recorder := NewRecorder(repo, logger.Discard())

	err := recorder.HandleMessage(context.Background(), eventMessage(t))

	var kafkaErr *kafka.KafkaError
	require.ErrorAs(t, err, &kafkaErr)
	assert.True(t, kafkaErr.IsTransient())
}
