package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "venuebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// Dev-only fallback, logged loudly when used.
	DefaultSessionSecret = "venuebook-dev-secret"
	DefaultSessionTTL    = 24 * time.Hour
	DefaultBcryptCost    = 10

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL = 10 * time.Second

	DefaultBookingEventsTopic    = "venuebook.booking-events"
	DefaultBookingEventsDLQTopic = "venuebook.booking-events.dlq"
	DefaultAuditConsumerGroup    = "venuebook-audit"

	DefaultPaginationLimit = 100
)
