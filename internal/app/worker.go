package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"obracheck/internal/config"
	"obracheck/internal/journal"
	"obracheck/internal/messaging/kafka"
	"obracheck/internal/messaging/kafka/producer"
	"obracheck/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays journal outbox rows to Kafka and prunes old journal
// entries on a schedule.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if !cfg.DatabaseEnabled() {
		return errors.New("DB_HOST and DB_NAME are required")
	}
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	journalService := journal.NewServiceWithOutbox(sqlDB, journal.NewRepository(gormDB), outboxRepo, logger)

	retention := time.Duration(cfg.SyncLogRetentionDays) * 24 * time.Hour
	pruner := journal.NewPruneScheduler(journalService, cfg.SyncLogPruneSpec, retention, logger)
	if err := pruner.Start(); err != nil {
		return err
	}
	defer pruner.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
