package services

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/google/uuid"
)

const transactionsTable = "transactions"

var (
	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidAuditLog   = errors.New("invalid audit log")
	ErrInvalidPagination = errors.New("invalid pagination: offset must be >= 0 and limit between 1 and 100")
)

// AuditService handles audit trail operations
type AuditService struct {
	repo repositories.AuditLogRepositoryInterface
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface) AuditServiceInterface {
	return &AuditService{
		repo: repo,
	}
}

// ValidateActivityType validates that the action is one the audit trail records
func ValidateActivityType(action string) error {
	switch action {
	case models.AuditActionCreate, models.AuditActionDelete:
		return nil
	default:
		return fmt.Errorf("invalid activity type: %s", action)
	}
}

// RecordTransactionCreated stores the new row's snapshot under the owner
func (s *AuditService) RecordTransactionCreated(ctx context.Context, principal authz.Principal, transaction *models.Transaction) error {
	if transaction == nil {
		return ErrInvalidAuditLog
	}

	return s.createAuditLog(ctx, &models.AuditLog{
		UserID:   principal.UserID,
		Action:   models.AuditActionCreate,
		Table:    transactionsTable,
		RecordID: transaction.ID,
		NewData:  models.TransactionSnapshot(transaction),
	})
}

// RecordTransactionDeleted stores the removed row's snapshot under the
// administrator who deleted it.
func (s *AuditService) RecordTransactionDeleted(ctx context.Context, principal authz.Principal, transaction *models.Transaction) error {
	if transaction == nil {
		return ErrInvalidAuditLog
	}

	return s.createAuditLog(ctx, &models.AuditLog{
		UserID:   principal.UserID,
		Action:   models.AuditActionDelete,
		Table:    transactionsTable,
		RecordID: transaction.ID,
		OldData:  models.TransactionSnapshot(transaction),
	})
}

// ListOwn returns the principal's own audit trail, newest first
func (s *AuditService) ListOwn(ctx context.Context, principal authz.Principal, offset, limit int) ([]*models.AuditLog, int64, error) {
	if principal.UserID == uuid.Nil {
		return nil, 0, ErrInvalidUserID
	}

	if offset < 0 || limit < 1 || limit > MaxPageSize {
		return nil, 0, ErrInvalidPagination
	}

	logs, total, err := s.repo.GetByUserID(ctx, principal.UserID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return logs, total, nil
}

func (s *AuditService) createAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	if err := ValidateActivityType(log.Action); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}
