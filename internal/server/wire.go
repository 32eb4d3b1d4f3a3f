package server

import (
	"log/slog"

	"expense-tracker/internal/config"
	"expense-tracker/internal/database"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Wire builds repositories and services over an open database. cache may be
// nil, in which case category lookups go straight to the database.
func Wire(cfg *config.Config, db *database.DB, cache redis.Cmdable, reg prometheus.Registerer, gatherer prometheus.Gatherer, logger *slog.Logger) Dependencies {
	if logger == nil {
		logger = slog.Default()
	}

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)
	auditRepo := repositories.NewAuditLogRepository(db.DB)
	categoryRepo := repositories.NewCachedCategoryRepository(
		repositories.NewCategoryRepository(db.DB),
		cache,
		cfg.Redis.CategoryTTL,
		logger,
	)

	metrics := services.NewPrometheusMetrics(reg)
	auditLogger := services.NewAuditLogger(logger)
	auditService := services.NewAuditService(auditRepo)

	return Dependencies{
		Transactions: services.NewTransactionService(
			transactionRepo,
			categoryRepo,
			profileRepo,
			auditService,
			auditLogger,
			metrics,
			logger,
		),
		Reports:     services.NewReportService(transactionRepo, auditLogger, metrics, logger),
		Categories:  services.NewCategoryService(categoryRepo),
		Profiles:    services.NewProfileService(profileRepo, logger),
		Audit:       auditService,
		Tokens:      services.NewTokenService(&cfg.JWT),
		Metrics:     metrics,
		DB:          db,
		Gatherer:    gatherer,
		RateLimiter: middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst),
		Logger:      logger,
	}
}
