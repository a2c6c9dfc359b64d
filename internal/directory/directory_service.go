package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DirectoryCacheKey = "workers:directory"

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	ListAll(ctx context.Context) ([]WorkerRef, error)
	ListAllFresh(ctx context.Context) ([]WorkerRef, error)
	ListBySite(ctx context.Context, siteID int64) ([]WorkerRef, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService wires the worker directory. A nil rdb or a zero ttl disables
// caching and every call goes to the backend.
func NewService(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) cacheEnabled() bool {
	return s.rdb != nil && s.ttl > 0
}

func (s *service) ListAll(ctx context.Context) ([]WorkerRef, error) {
	// 1. Cek Redis
	if s.cacheEnabled() {
		cached, err := s.rdb.Get(ctx, DirectoryCacheKey).Result()
		switch {
		case err == nil:
			var workers []WorkerRef
			if json.Unmarshal([]byte(cached), &workers) == nil {
				return workers, nil
			}
			s.logger.Warn("discarding undecodable worker directory cache")
		case err != redis.Nil:
			s.logger.Warn("read worker directory cache failed", zap.Error(err))
		}
	}

	return s.fetch(ctx)
}

// ListAllFresh skips the cached copy so a worker added within the TTL is
// seen, then refreshes the cache for later readers.
func (s *service) ListAllFresh(ctx context.Context) ([]WorkerRef, error) {
	return s.fetch(ctx)
}

func (s *service) fetch(ctx context.Context) ([]WorkerRef, error) {
	// 2. Concurrent misses share one backend call
	v, err, _ := s.sf.Do(DirectoryCacheKey, func() (interface{}, error) {
		workers, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		if s.cacheEnabled() {
			if payload, err := json.Marshal(workers); err == nil {
				if err := s.rdb.Set(ctx, DirectoryCacheKey, payload, s.ttl).Err(); err != nil {
					s.logger.Warn("write worker directory cache failed", zap.Error(err))
				}
			}
		}
		return workers, nil
	})
	if err != nil {
		s.logger.Error("list worker directory failed", zap.Error(err))
		return nil, err
	}

	return v.([]WorkerRef), nil
}

func (s *service) ListBySite(ctx context.Context, siteID int64) ([]WorkerRef, error) {
	workers, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBySite(workers, siteID), nil
}

func (s *service) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, DirectoryCacheKey).Err()
}
