package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker/internal/aggregation"
	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
)

type reportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportService{
		transactionRepo: transactionRepo,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
	}
}

// CategoryReport sums the principal's transactions per category. The
// summary is rebuilt on every call.
func (s *reportService) CategoryReport(ctx context.Context, principal authz.Principal, filters models.ReportFilters) (*models.ReportSummary, error) {
	start := time.Now()

	if err := authz.RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	rows, err := s.transactionRepo.ReportRows(ctx, principal.UserID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load report rows: %w", err)
	}

	summary, skipped := aggregation.Summarize(rows)
	if skipped > 0 {
		s.auditLogger.LogOrphanedTransactions(ctx, principal.UserID, skipped)
		s.metrics.RecordGauge("report.orphaned_rows", float64(skipped), nil)
	}

	s.logger.DebugContext(ctx, "category report generated",
		"user_id", principal.UserID,
		"rows", len(rows),
		"categories", len(summary.ByCategory),
	)
	s.metrics.IncrementCounter("report.generated", nil)
	s.metrics.RecordProcessingTime("report.category", time.Since(start))

	return &summary, nil
}
