package journal

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const pruneTimeout = 2 * time.Minute

// PruneScheduler deletes journal entries older than the retention window on a
// cron schedule.
type PruneScheduler struct {
	cronEngine *cron.Cron
	service    Service
	spec       string
	retention  time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewPruneScheduler(service Service, spec string, retention time.Duration, logger *zap.Logger) *PruneScheduler {
	if logger == nil {
		logger = zap.L()
	}
	return &PruneScheduler{
		cronEngine: cron.New(cron.WithLocation(time.UTC)),
		service:    service,
		spec:       spec,
		retention:  retention,
		logger:     logger.Named("journal.prune"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *PruneScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()
		s.PruneOnce(ctx)
	}); err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Info("prune scheduler started", zap.String("spec", s.spec), zap.Duration("retention", s.retention))
	return nil
}

// PruneOnce runs a single prune pass and returns how many rows went away.
func (s *PruneScheduler) PruneOnce(ctx context.Context) int64 {
	if s.retention <= 0 {
		return 0
	}
	deleted, err := s.service.Prune(ctx, s.now().Add(-s.retention))
	if err != nil {
		s.logger.Error("prune sync logs failed", zap.Error(err))
		return 0
	}
	return deleted
}

// Stop waits for a running prune to finish.
func (s *PruneScheduler) Stop() {
	<-s.cronEngine.Stop().Done()
	s.logger.Info("prune scheduler stopped")
}
