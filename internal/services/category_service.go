package services

import (
	"context"
	"errors"
	"fmt"

	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/google/uuid"
)

// CategoryService serves category reference data
type CategoryService struct {
	repo repositories.CategoryRepositoryInterface
}

func NewCategoryService(repo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &CategoryService{repo: repo}
}

// List returns categories ordered by type then name. An empty type lists all.
func (s *CategoryService) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	if categoryType != "" && !models.IsValidTransactionType(categoryType) {
		return nil, models.ErrInvalidTransactionType
	}

	categories, err := s.repo.List(ctx, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}
