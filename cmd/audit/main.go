package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"venuebook/internal/audit"
	"venuebook/internal/audit/repository"
	"venuebook/pkg/config"
	"venuebook/pkg/kafka"
	kafkaconfig "venuebook/pkg/kafka/config"
	kafkamiddleware "venuebook/pkg/kafka/middleware"

	"github.com/joho/godotenv"
)

const ServiceName = "audit"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting audit consumer")

	auditRepo := repository.NewMongoAuditRepository(cfg)
	recorder := audit.NewRecorder(auditRepo, cfg.Log)

	kafkaCfg := kafkaconfig.Load()
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.AuditConsumerGroup,
		cfg.BookingEventsDLQTopic,
		recorder.HandleMessage,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware())
	consumer.Use(kafkamiddleware.MetricsConsumerMiddleware())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumerErrors := make(chan error, 1)
	go func() {
		cfg.Log.Info("Consuming booking events",
			"topic", cfg.BookingEventsTopic,
			"group", cfg.AuditConsumerGroup,
		)
		consumerErrors <- consumer.Start(ctx)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil {
			cfg.Log.Error("Consumer stopped with error", "error", err)
		}
	case sig := <-shutdown:
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Audit consumer stopped")
}
