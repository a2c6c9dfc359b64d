package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"obracheck/internal/config"
	"obracheck/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infra holds the optional backing stores. Nil fields mean the feature that
// needs them runs degraded: no cache without Redis, no journal without Postgres.
type infra struct {
	db     *sql.DB
	gormDB *gorm.DB
	rdb    *redis.Client
}

func (i infra) close() error {
	var errs []error
	if i.db != nil {
		errs = append(errs, i.db.Close())
	}
	if i.rdb != nil {
		errs = append(errs, i.rdb.Close())
	}
	return errors.Join(errs...)
}

func connectInfra(cfg config.Config, logger *zap.Logger) (infra, error) {
	var out infra

	if cfg.DatabaseEnabled() {
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
			return infra{}, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return infra{}, err
		}
		out.gormDB, out.db = gormDB, sqlDB
		logger.Info("database connection established")
	} else {
		logger.Warn("database not configured, sync journal disabled")
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			_ = out.close()
			return infra{}, err
		}
		out.rdb = rdb
		logger.Info("redis connection established")
	} else {
		logger.Warn("redis not configured, caches disabled")
	}

	return out, nil
}

// BuildApp connects infrastructure and registers every module on router. The
// returned func drains roster writes and closes connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(context.Context) error, error) {
	logger := zap.L().Named("app")

	if cfg.ObraAPIBaseURL == "" {
		return nil, errors.New("OBRA_API_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	deps, err := connectInfra(cfg, logger)
	if err != nil {
		return nil, err
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	shutdown := registerModules(router, cfg, deps, logger)

	return func(ctx context.Context) error {
		return errors.Join(shutdown(ctx), deps.close())
	}, nil
}
