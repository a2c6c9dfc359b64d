package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"obracheck/internal/events"
	journalerrors "obracheck/internal/journal/errors"
	"obracheck/internal/messaging/kafka"
	"obracheck/internal/shared/contextutil"
	"obracheck/internal/shared/textutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	aggregateTypeRoster = "attendance_roster"
	defaultListLimit    = 100
	maxErrorMessage     = 500
	dateLayout          = "2006-01-02"
)

//go:generate mockgen -source=journal_service.go -destination=mock/journal_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, result SyncResult) (SyncLogResponse, error)
	List(ctx context.Context, siteID int64, date string) ([]SyncLogResponse, error)
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("journal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("journal.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Record(ctx context.Context, result SyncResult) (SyncLogResponse, error) {
	md := contextutil.ExtractMetadata(ctx)

	entry := &SyncLog{
		ID:             uuid.New(),
		SiteID:         result.SiteID,
		AttendanceDate: result.Date,
		ItemCount:      result.ItemCount,
		Status:         events.SyncStatusSucceeded,
		RequestID:      md.RequestID,
		UserID:         md.UserID,
		CreatedAt:      s.now(),
	}
	if result.Err != nil {
		msg := textutil.Truncate(result.Err.Error(), maxErrorMessage)
		entry.Status = events.SyncStatusFailed
		entry.ErrorMessage = &msg
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record sync begin tx failed", zap.String("request_id", md.RequestID), zap.Error(err))
		return SyncLogResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		err = mapRepositoryError(err)
		if errors.Is(err, journalerrors.ErrSyncLogAlreadyRecorded) {
			s.logger.Warn("sync log already recorded", zap.String("sync_id", entry.ID.String()))
		} else {
			s.logger.Error("record sync persist failed", zap.String("request_id", md.RequestID), zap.Error(err))
		}
		return SyncLogResponse{}, err
	}

	if s.outbox != nil {
		event := events.AttendanceSyncedEvent{
			EventType:  events.EventTypeAttendanceSynced,
			RequestID:  md.RequestID,
			SyncID:     entry.ID.String(),
			SiteID:     entry.SiteID,
			Date:       entry.AttendanceDate,
			Status:     entry.Status,
			ItemCount:  entry.ItemCount,
			OccurredAt: entry.CreatedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return SyncLogResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     md.RequestID,
			AggregateType: aggregateTypeRoster,
			AggregateID:   events.RosterAggregateID(entry.SiteID, entry.AttendanceDate),
			EventType:     event.EventType,
			Topic:         events.AttendanceSyncedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("record sync outbox persist failed",
				zap.String("sync_id", entry.ID.String()),
				zap.Error(err),
			)
			return SyncLogResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record sync commit failed", zap.String("request_id", md.RequestID), zap.Error(err))
		return SyncLogResponse{}, err
	}

	s.logger.Debug("sync recorded",
		zap.String("sync_id", entry.ID.String()),
		zap.Int64("site_id", entry.SiteID),
		zap.String("date", entry.AttendanceDate),
		zap.String("status", entry.Status),
	)
	return mapToResponse(*entry), nil
}

func (s *service) List(ctx context.Context, siteID int64, date string) ([]SyncLogResponse, error) {
	if siteID <= 0 {
		return nil, journalerrors.ErrInvalidSiteID
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, journalerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindBySiteAndDate(ctx, siteID, date, defaultListLimit)
	if err != nil {
		s.logger.Error("list sync logs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]SyncLogResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("prune sync logs failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}
	s.logger.Info("sync logs pruned", zap.Time("cutoff", cutoff), zap.Int64("deleted", deleted))

	if s.outbox != nil {
		// rows already on Kafka age out with the logs that produced them
		purged, err := s.outbox.PurgeSent(ctx, cutoff)
		if err != nil {
			s.logger.Warn("purge sent outbox events failed", zap.Time("cutoff", cutoff), zap.Error(err))
		} else {
			s.logger.Info("sent outbox events purged", zap.Int64("purged", purged))
		}
	}

	return deleted, nil
}

func mapToResponse(l SyncLog) SyncLogResponse {
	return SyncLogResponse{
		ID:           l.ID.String(),
		SiteID:       l.SiteID,
		Date:         l.AttendanceDate,
		ItemCount:    l.ItemCount,
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		RequestID:    l.RequestID,
		UserID:       l.UserID,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}
