package consumer

import (
	"context"
	"encoding/json"
	"time"

	"obracheck/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const invalidateAttempts = 3

// invalidateBackoff grows linearly with the attempt number.
var invalidateBackoff = 200 * time.Millisecond

// ReportCache drops rendered reports that a sync made stale.
type ReportCache interface {
	Invalidate(ctx context.Context, siteID int64, date string) error
}

func ConsumeAttendanceSynced(
	ctx context.Context,
	reader MessageReader,
	reports ReportCache,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_synced")
	log.Info("attendance synced consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance synced consumer stopped")
				return
			}
			log.Error("fetch attendance synced message failed", zap.Error(err))
			continue
		}

		handleAttendanceSynced(ctx, reader, reports, msg, log)
	}
}

func handleAttendanceSynced(
	ctx context.Context,
	reader MessageReader,
	reports ReportCache,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.AttendanceSyncedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode attendance_synced event failed", zap.Error(err), zap.Int64("offset", msg.Offset))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	// Failed syncs did not change anything server side.
	if event.Status == events.SyncStatusSucceeded {
		if err := invalidateWithRetry(ctx, reports, event); err != nil {
			if ctx.Err() != nil {
				// shutting down, nothing later is committed so the event is redelivered
				return
			}
			// kafka commits by offset, holding this one back would not survive the
			// next commit; the cache TTL bounds the staleness instead
			log.Error("invalidate attendance report failed, giving up",
				zap.Int64("site_id", event.SiteID),
				zap.String("date", event.Date),
				zap.Int("attempts", invalidateAttempts),
				zap.Error(err),
			)
		}
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit attendance synced message failed", zap.Error(err))
		return
	}

	log.Debug("attendance synced event handled",
		zap.String("sync_id", event.SyncID),
		zap.Int64("site_id", event.SiteID),
		zap.String("date", event.Date),
		zap.String("status", event.Status),
	)
}

func invalidateWithRetry(ctx context.Context, reports ReportCache, event events.AttendanceSyncedEvent) error {
	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		if err = reports.Invalidate(ctx, event.SiteID, event.Date); err == nil {
			return nil
		}
		if attempt == invalidateAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * invalidateBackoff):
		}
	}
	return err
}
