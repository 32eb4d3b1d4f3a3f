package server

import (
	"log/slog"
	"net/http"
	"time"

	"expense-tracker/internal/config"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Transactions services.TransactionServiceInterface
	Reports      services.ReportServiceInterface
	Categories   services.CategoryServiceInterface
	Profiles     services.ProfileServiceInterface
	Audit        services.AuditServiceInterface
	Tokens       services.TokenServiceInterface
	Metrics      services.MetricsRecorderInterface
	DB           handlers.Pinger
	Gatherer     prometheus.Gatherer
	RateLimiter  *middleware.RateLimiter
	Logger       *slog.Logger
}

// New builds the Echo instance with middleware and routes
func New(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(deps.Logger))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
		MaxAge:        int((12 * time.Hour).Seconds()),
	}))
	e.Use(echomw.BodyLimit("64K"))
	if deps.RateLimiter != nil {
		e.Use(deps.RateLimiter.Middleware())
	}

	registerRoutes(e, cfg, deps)
	return e
}

func registerRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	health := handlers.NewHealthCheckHandler(deps.DB)
	e.GET("/health", health.HealthCheck)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	transactions := handlers.NewTransactionHandler(deps.Transactions)
	reports := handlers.NewReportHandler(deps.Reports)
	categories := handlers.NewCategoryHandler(deps.Categories)
	profiles := handlers.NewProfileHandler(deps.Profiles)
	auditLogs := handlers.NewAuditLogHandler(deps.Audit)

	api := e.Group("/api/v1", middleware.RequireAuth(deps.Tokens, deps.Profiles, deps.Metrics))

	api.GET("/transactions", transactions.ListTransactions)
	api.POST("/transactions", transactions.CreateTransaction)
	api.GET("/transactions/:id", transactions.GetTransaction)
	api.DELETE("/transactions/:id", transactions.DeleteTransaction)
	api.PUT("/transactions/:id", transactions.UpdateTransaction)
	api.PATCH("/transactions/:id", transactions.UpdateTransaction)

	api.GET("/reports/category", reports.CategoryReport)
	api.GET("/categories", categories.ListCategories)
	api.GET("/profile", profiles.GetProfile)
	api.GET("/audit-logs", auditLogs.ListAuditLogs)

	if cfg.CanMintTokens() {
		dev := handlers.NewDevHandler(deps.Profiles, deps.Tokens)
		e.POST("/dev/token", dev.IssueToken)
	}
}
