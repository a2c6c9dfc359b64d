package app

import (
	"context"

	"obracheck/internal/attendance"
	"obracheck/internal/config"
	"obracheck/internal/directory"
	"obracheck/internal/journal"
	"obracheck/internal/messaging/kafka"
	"obracheck/internal/middleware"
	"obracheck/internal/obraapi"
	"obracheck/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	deps infra,
	logger *zap.Logger,
) func(context.Context) error {
	// --- Backend client ---
	api := obraapi.NewClient(cfg.ObraAPIBaseURL, cfg.ObraAPITimeout, nil, logger)

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(api)
	directoryRepo := directory.NewRepository(api)

	// --- Services ---
	directoryService := directory.NewService(directoryRepo, deps.rdb, cfg.DirectoryCacheTTL, logger)

	var (
		journalService journal.Service
		recorder       attendance.SyncRecorder
	)
	if deps.gormDB != nil {
		journalRepo := journal.NewRepository(deps.gormDB)
		outboxRepo := kafka.NewOutboxRepository(deps.db)
		journalService = journal.NewServiceWithOutbox(deps.db, journalRepo, outboxRepo, logger)
		recorder = journalService
	}

	// invalidation only touches Redis; rendering needs the attendance service
	reportCache := report.NewService(nil, deps.rdb, cfg.ReportCacheTTL, logger)
	attendanceService := attendance.NewService(attendanceRepo, directoryService, recorder, reportCache, logger)
	reportService := report.NewService(attendanceService, deps.rdb, cfg.ReportCacheTTL, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	directoryHandler := directory.NewHandler(directoryService)
	journalHandler := journal.NewHandler(journalService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(logger))

	api1 := router.Group("/api/v1")
	api1.Use(
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	)
	{
		attendance.RegisterRoutes(api1, attendanceHandler)
		directory.RegisterRoutes(api1, directoryHandler, middleware.RoleMiddleware("ADMIN", "SUPERVISOR"))
		journal.RegisterRoutes(api1, journalHandler)
		report.RegisterRoutes(api1, reportHandler)
	}

	return attendanceService.Shutdown
}
