package repositories

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts a transaction. The category association is never written.
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Omit("Category").Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID with its category loaded
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// List returns one page of a user's transactions, newest first.
// Rows are ordered by occurred_at DESC, id DESC so the keyset cursor is stable.
func (r *transactionRepository) List(ctx context.Context, filters models.TransactionFilters) ([]models.Transaction, error) {
	var transactions []models.Transaction

	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Preload("Category").
		Where("user_id = ?", filters.UserID)

	if filters.FromDate != nil {
		query = query.Where("occurred_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("occurred_at <= ?", *filters.ToDate)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.CursorOccurredAt != nil {
		query = query.Where("(occurred_at < ? OR (occurred_at = ? AND id < ?))",
			*filters.CursorOccurredAt, *filters.CursorOccurredAt, filters.CursorID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Order("occurred_at DESC").Order("id DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

// ReportRows returns the user's transactions joined to their categories in
// occurred_at order. Transactions whose category is missing come back with
// nil category columns.
func (r *transactionRepository) ReportRows(ctx context.Context, userID uuid.UUID, filters models.ReportFilters) ([]models.ReportRow, error) {
	var rows []models.ReportRow

	query := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("c.id AS category_id, c.name AS category_name, c.type AS category_type, t.amount AS amount").
		Joins("LEFT JOIN categories AS c ON c.id = t.category_id").
		Where("t.user_id = ?", userID)

	if filters.FromDate != nil {
		query = query.Where("t.occurred_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("t.occurred_at <= ?", *filters.ToDate)
	}
	if filters.Type != "" {
		query = query.Where("t.type = ?", filters.Type)
	}

	if err := query.Order("t.occurred_at ASC").Order("t.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get report rows: %w", err)
	}

	return rows, nil
}

// Delete removes a transaction permanently
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
