// Package audit consumes the booking events topic and records every
// lifecycle change into a durable audit log.
package audit

import (
	"context"
	"time"

	"venuebook/internal/audit/repository"
	"venuebook/internal/events"
	"venuebook/pkg/kafka"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

// Recorder turns booking event messages into audit log entries. It is the
// message handler plugged into the Kafka consumer.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  log,
	}
}

// HandleMessage decodes one booking event and records it. Malformed payloads
// are permanent failures; storage errors are transient and retried.
func (r *Recorder) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var event events.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode booking event", err).
			WithDetail("event_id", msg.GetEventID())
	}

	entry := &model.AuditEntry{
		EventID:    msg.GetEventID(),
		EventType:  msg.GetEventType(),
		BookingID:  event.BookingID,
		VenueID:    event.VenueID,
		ActorID:    event.ActorID,
		Status:     string(event.Status),
		OccurredAt: event.OccurredAt,
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	if err := r.repo.Record(ctx, entry); err != nil {
		return kafka.NewTransientError("failed to record audit entry", err).
			WithDetail("event_id", entry.EventID).
			WithDetail("booking_id", entry.BookingID)
	}

	r.log.Info("Audit entry recorded",
		"event_id", entry.EventID,
		"event_type", entry.EventType,
		"booking_id", entry.BookingID,
	)
	return nil
}
