package events

import (
	"context"

	"venuebook/pkg/kafka"
	kafkaconfig "venuebook/pkg/kafka/config"
	"venuebook/pkg/logger"

	"github.com/google/uuid"
)

const schemaVersion = "1.0"

// KafkaPublisher publishes booking events to the booking events topic.
type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(cfg *kafkaconfig.Config, topic, dlqTopic, source string, log *logger.Logger) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(cfg, topic, dlqTopic)
	if err != nil {
		return nil, err
	}

	return &KafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, event BookingEvent) error {
	msg := kafka.NewMessage().
		WithKey(event.VenueID).
		WithValue(event).
		WithEventID(uuid.New().String()).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"booking_id", event.BookingID,
		"venue_id", event.VenueID,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
