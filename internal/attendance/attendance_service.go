package attendance

import (
	"context"
	"time"

	attendanceerrors "obracheck/internal/attendance/errors"
	"obracheck/internal/directory"
	"obracheck/internal/journal"
	"obracheck/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	journalTimeout    = 5 * time.Second
	invalidateTimeout = 2 * time.Second
)

// SyncRecorder journals the outcome of a bulk upsert.
type SyncRecorder interface {
	Record(ctx context.Context, result journal.SyncResult) (journal.SyncLogResponse, error)
}

// ReportInvalidator drops rendered reports of a roster once the backend has
// accepted new statuses.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, siteID int64, date string) error
}

type Service interface {
	Load(ctx context.Context, key RosterKey) (SiteRoster, error)
	Current(ctx context.Context, key RosterKey) (SiteRoster, error)
	UpdateStatus(ctx context.Context, key RosterKey, workerID int64, status Status) (SiteRoster, error)
	Close(ctx context.Context, key RosterKey) bool
	Reconciled(ctx context.Context, key RosterKey) (SiteRoster, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      Repository
	directory directory.Service
	journal   SyncRecorder
	reports   ReportInvalidator
	store     *RosterStore
	logger    *zap.Logger
}

// NewService wires the roster workflow. recorder may be nil, in which case
// sync outcomes are only logged. reports may be nil when nothing caches
// rendered reports.
func NewService(
	repo Repository,
	dir directory.Service,
	recorder SyncRecorder,
	reports ReportInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:      repo,
		directory: dir,
		journal:   recorder,
		reports:   reports,
		store:     NewRosterStore(),
		logger:    l,
	}
}

// Load reconciles the roster and replaces the session copy. On failure the
// session keeps whatever it held before.
func (s *service) Load(ctx context.Context, key RosterKey) (SiteRoster, error) {
	fresh, err := s.reconcile(ctx, key, s.directory.ListAllFresh)
	if err != nil {
		return SiteRoster{}, err
	}
	view := s.store.Replace(key, fresh.SiteName, fresh.Records)

	contextutil.GetLogger(ctx, s.logger).Debug("roster loaded",
		zap.String("roster", key.String()),
		zap.Int("records", len(view.Records)),
	)
	return view, nil
}

// Reconciled builds a roster without touching the session. Unlike Load it
// accepts the cached worker directory.
func (s *service) Reconciled(ctx context.Context, key RosterKey) (SiteRoster, error) {
	return s.reconcile(ctx, key, s.directory.ListAll)
}

func (s *service) reconcile(
	ctx context.Context,
	key RosterKey,
	listWorkers func(context.Context) ([]directory.WorkerRef, error),
) (SiteRoster, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	remote, err := s.repo.FindBySiteAndDate(ctx, key.SiteID, key.Date)
	if err != nil {
		log.Warn("fetch site attendance failed", zap.String("roster", key.String()), zap.Error(err))
		return SiteRoster{}, err
	}

	workers, err := listWorkers(ctx)
	if err != nil {
		log.Warn("fetch worker directory failed", zap.String("roster", key.String()), zap.Error(err))
		return SiteRoster{}, err
	}

	return SiteRoster{
		Key:      key,
		SiteName: remote.SiteName,
		Records:  Reconcile(key.SiteID, remote.Records, workers),
	}, nil
}

func (s *service) Current(ctx context.Context, key RosterKey) (SiteRoster, error) {
	view, ok := s.store.Snapshot(key)
	if !ok {
		return SiteRoster{}, attendanceerrors.ErrRosterNotLoaded
	}
	return view, nil
}

// UpdateStatus changes one worker locally and sends the whole roster to the
// backend without waiting for it. A failed write is not rolled back.
func (s *service) UpdateStatus(ctx context.Context, key RosterKey, workerID int64, status Status) (SiteRoster, error) {
	view, err := s.store.Apply(ctx, key, workerID, status, s.sync)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Debug("status update ignored",
			zap.String("roster", key.String()),
			zap.Int64("worker_id", workerID),
		)
		return SiteRoster{}, err
	}
	return view, nil
}

func (s *service) sync(ctx context.Context, key RosterKey, snapshot Roster) {
	log := contextutil.GetLogger(ctx, s.logger)
	date := key.Date

	err := s.repo.BulkUpsert(ctx, BuildBulkRequest(key.SiteID, &date, snapshot))
	if err != nil {
		log.Error("bulk attendance upsert failed",
			zap.String("roster", key.String()),
			zap.Int("items", len(snapshot)),
			zap.Error(err),
		)
	} else {
		log.Debug("bulk attendance upsert sent",
			zap.String("roster", key.String()),
			zap.Int("items", len(snapshot)),
		)
		s.invalidateReports(ctx, key)
	}

	if s.journal == nil {
		return
	}

	// the journal entry is written even when the session was closed mid-flight
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if _, jerr := s.journal.Record(jctx, journal.SyncResult{
		SiteID:    key.SiteID,
		Date:      key.Date,
		ItemCount: len(snapshot),
		Err:       err,
	}); jerr != nil {
		log.Warn("journal sync result failed", zap.String("roster", key.String()), zap.Error(jerr))
	}
}

// invalidateReports runs without the journal so cached reports go stale for
// no longer than one upsert, with or without the outbox consumer.
func (s *service) invalidateReports(ctx context.Context, key RosterKey) {
	if s.reports == nil {
		return
	}
	ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	if err := s.reports.Invalidate(ictx, key.SiteID, key.Date); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("invalidate cached report failed",
			zap.String("roster", key.String()),
			zap.Error(err),
		)
	}
}

func (s *service) Close(ctx context.Context, key RosterKey) bool {
	closed := s.store.Close(key)
	if closed {
		contextutil.GetLogger(ctx, s.logger).Debug("roster session closed", zap.String("roster", key.String()))
	}
	return closed
}

func (s *service) Shutdown(ctx context.Context) error {
	return s.store.Shutdown(ctx)
}
