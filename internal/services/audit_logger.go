package services

import (
	"context"
	"log/slog"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// ContextWithRequestID stores the request id so service logs can be correlated
// with the HTTP request that caused them.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogTransactionCreated(ctx context.Context, transaction *models.Transaction) {
	al.logger.InfoContext(ctx, "transaction created",
		slog.String("event_type", "transaction_created"),
		slog.String("transaction_id", transaction.ID.String()),
		slog.String("user_id", transaction.UserID.String()),
		slog.String("type", transaction.Type),
		slog.Int64("amount", transaction.Amount),
		slog.String("category_id", transaction.CategoryID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", RequestIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogTransactionDeleted(ctx context.Context, transaction *models.Transaction, deletedBy uuid.UUID) {
	al.logger.InfoContext(ctx, "transaction deleted",
		slog.String("event_type", "transaction_deleted"),
		slog.String("transaction_id", transaction.ID.String()),
		slog.String("owner_id", transaction.UserID.String()),
		slog.String("deleted_by", deletedBy.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", RequestIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogTransactionRejected(ctx context.Context, userID uuid.UUID, reason string) {
	al.logger.InfoContext(ctx, "transaction rejected",
		slog.String("event_type", "transaction_rejected"),
		slog.String("user_id", userID.String()),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", RequestIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogAccessDenied(ctx context.Context, userID uuid.UUID, operation string, reason string) {
	al.logger.WarnContext(ctx, "access denied",
		slog.String("event_type", "access_denied"),
		slog.String("user_id", userID.String()),
		slog.String("operation", operation),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", RequestIDFromContext(ctx)),
	)
}

// LogOrphanedTransactions reports rows left out of a report because their
// category no longer resolves.
func (al *AuditLogger) LogOrphanedTransactions(ctx context.Context, userID uuid.UUID, skipped int) {
	al.logger.WarnContext(ctx, "report skipped transactions without a category",
		slog.String("event_type", "orphaned_transactions"),
		slog.String("user_id", userID.String()),
		slog.Int("skipped", skipped),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", RequestIDFromContext(ctx)),
	)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}

	return ""
}
