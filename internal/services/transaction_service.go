package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/validation"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
)

// transactionService implements TransactionServiceInterface
type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	profileRepo     repositories.ProfileRepositoryInterface
	audit           AuditServiceInterface
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a transaction service. categoryRepo is
// expected to be the cached category repository in production.
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	audit AuditServiceInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &transactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		profileRepo:     profileRepo,
		audit:           audit,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create validates input, resolves its category and persists the
// transaction for the principal. Nothing is written unless every check
// passes.
func (s *transactionService) Create(ctx context.Context, principal authz.Principal, input map[string]any) (*models.Transaction, error) {
	start := time.Now()

	draft, err := validation.ValidateCreateTransaction(input)
	if err != nil {
		s.reject(ctx, principal.UserID, "validation")
		return nil, err
	}

	if err := authz.RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, draft.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			s.reject(ctx, principal.UserID, "unknown_category")
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if err := authz.CanInsertOwnMatchingType(principal, principal.UserID, draft.Type, category); err != nil {
		s.reject(ctx, principal.UserID, rejectReason(err))
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:     principal.UserID,
		Type:       draft.Type,
		Amount:     draft.Amount,
		CategoryID: draft.CategoryID,
		Note:       draft.Note,
		OccurredAt: draft.OccurredAt,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	created, err := s.transactionRepo.GetByID(ctx, transaction.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to reload created transaction", "transaction_id", transaction.ID, "error", err)
		transaction.Category = category
		created = transaction
	}

	if err := s.audit.RecordTransactionCreated(ctx, principal, created); err != nil {
		s.logger.ErrorContext(ctx, "failed to create audit log", "error", err, "action", models.AuditActionCreate)
	}
	s.auditLogger.LogTransactionCreated(ctx, created)

	tags := map[string]string{"type": created.Type}
	s.metrics.IncrementCounter("transaction.created", tags)
	s.metrics.RecordGauge("transaction.amount", float64(created.Amount), tags)
	s.metrics.RecordProcessingTime("transaction.create", time.Since(start))

	return created, nil
}

// List returns the principal's transactions, newest first. The owner filter
// always comes from the principal.
func (s *transactionService) List(ctx context.Context, principal authz.Principal, filters models.TransactionFilters) ([]models.Transaction, bool, error) {
	if err := authz.RequireAuthenticated(principal); err != nil {
		return nil, false, err
	}

	filters.UserID = principal.UserID
	filters.Limit = clampPageSize(filters.Limit)

	pageSize := filters.Limit
	filters.Limit = pageSize + 1

	transactions, err := s.transactionRepo.List(ctx, filters)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list transactions: %w", err)
	}

	hasMore := len(transactions) > pageSize
	if hasMore {
		transactions = transactions[:pageSize]
	}

	return transactions, hasMore, nil
}

// Get returns one of the principal's transactions. Rows owned by someone
// else are reported as not found.
func (s *transactionService) Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*models.Transaction, error) {
	if err := authz.RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := authz.CanViewOwn(principal, transaction); err != nil {
		return nil, ErrTransactionNotFound
	}

	return transaction, nil
}

// Delete removes a transaction. Only administrators may delete, and the
// role is read from the profile store rather than trusted from the caller.
func (s *transactionService) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error {
	if err := authz.RequireAuthenticated(principal); err != nil {
		return err
	}

	profile, err := s.profileRepo.GetByID(ctx, principal.UserID)
	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		principal.Role = ""
	case err != nil:
		return fmt.Errorf("failed to load profile: %w", err)
	default:
		principal.Role = profile.Role
	}

	if err := authz.CanDeleteIfAdmin(principal); err != nil {
		s.auditLogger.LogAccessDenied(ctx, principal.UserID, "transaction.delete", err.Error())
		return err
	}

	existing, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := s.audit.RecordTransactionDeleted(ctx, principal, existing); err != nil {
		s.logger.ErrorContext(ctx, "failed to create audit log", "error", err, "action", models.AuditActionDelete)
	}
	s.auditLogger.LogTransactionDeleted(ctx, existing, principal.UserID)
	s.metrics.IncrementCounter("transaction.deleted", nil)

	return nil
}

func (s *transactionService) reject(ctx context.Context, userID uuid.UUID, reason string) {
	s.auditLogger.LogTransactionRejected(ctx, userID, reason)
	s.metrics.IncrementCounter("transaction.rejected", map[string]string{"reason": reason})
}

func rejectReason(err error) string {
	var verr *validation.ValidationError
	if errors.As(err, &verr) && verr.Has(validation.CodeTypeMismatch) {
		return "type_mismatch"
	}
	return "forbidden"
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
