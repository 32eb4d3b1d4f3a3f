package repositories

import (
	"context"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations.
// There is no update operation; transactions are append-only.
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, error)
	ReportRows(ctx context.Context, userID uuid.UUID, filters models.ReportFilters) ([]models.ReportRow, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category reference data
type CategoryRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, categoryType string) ([]models.Category, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, categories []models.Category) error
}

// ProfileRepositoryInterface defines the contract for profile repository operations
type ProfileRepositoryInterface interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(ctx context.Context, log *models.AuditLog) error
	GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
}
