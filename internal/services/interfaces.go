package services

import (
	"context"
	"time"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// TransactionServiceInterface defines transaction business operations.
// There is no update operation; transactions are immutable once created.
type TransactionServiceInterface interface {
	// Create validates the untyped input, checks the category and persists
	// the transaction for the principal.
	Create(ctx context.Context, principal authz.Principal, input map[string]any) (*models.Transaction, error)
	// List returns one page of the principal's transactions and whether more follow.
	List(ctx context.Context, principal authz.Principal, filters models.TransactionFilters) ([]models.Transaction, bool, error)
	Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*models.Transaction, error)
	Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error
}

// ReportServiceInterface builds derived views over a user's transactions
type ReportServiceInterface interface {
	CategoryReport(ctx context.Context, principal authz.Principal, filters models.ReportFilters) (*models.ReportSummary, error)
}

// CategoryServiceInterface exposes category reference data
type CategoryServiceInterface interface {
	List(ctx context.Context, categoryType string) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// AuditServiceInterface defines the contract for audit trail operations
type AuditServiceInterface interface {
	RecordTransactionCreated(ctx context.Context, principal authz.Principal, transaction *models.Transaction) error
	RecordTransactionDeleted(ctx context.Context, principal authz.Principal, transaction *models.Transaction) error
	ListOwn(ctx context.Context, principal authz.Principal, offset, limit int) ([]*models.AuditLog, int64, error)
}

// ProfileServiceInterface resolves callers to profiles
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// ResolvePrincipal maps verified token claims to a principal whose role
	// comes from the profile store, never from the token.
	ResolvePrincipal(ctx context.Context, claims *models.CustomClaims) (authz.Principal, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(profile *models.Profile) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type AuditLoggerInterface interface {
	LogTransactionCreated(ctx context.Context, transaction *models.Transaction)
	LogTransactionDeleted(ctx context.Context, transaction *models.Transaction, deletedBy uuid.UUID)
	LogTransactionRejected(ctx context.Context, userID uuid.UUID, reason string)
	LogAccessDenied(ctx context.Context, userID uuid.UUID, operation string, reason string)
	LogOrphanedTransactions(ctx context.Context, userID uuid.UUID, skipped int)
}
