package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type profileService struct {
	repo   repositories.ProfileRepositoryInterface
	logger *slog.Logger
}

func NewProfileService(repo repositories.ProfileRepositoryInterface, logger *slog.Logger) ProfileServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileService{repo: repo, logger: logger}
}

func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// ResolvePrincipal loads the caller's profile, provisioning a regular user
// profile on first sight when the token carries a valid email.
func (s *profileService) ResolvePrincipal(ctx context.Context, claims *models.CustomClaims) (authz.Principal, error) {
	if claims == nil {
		return authz.Principal{}, authz.ErrUnauthenticated
	}

	userID, err := claims.UserID()
	if err != nil || userID == uuid.Nil {
		return authz.Principal{}, ErrInvalidSubject
	}

	profile, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		profile, err = s.provision(ctx, userID, claims.Email)
	}
	if err != nil {
		return authz.Principal{}, err
	}

	return authz.Principal{UserID: profile.ID, Role: profile.Role}, nil
}

func (s *profileService) provision(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error) {
	if email == "" {
		return nil, ErrProfileNotFound
	}

	profile := &models.Profile{ID: userID, Email: email, Role: models.RoleUser}
	if err := profile.Validate(); err != nil {
		s.logger.WarnContext(ctx, "refusing to provision profile from token claims", "user_id", userID, "error", err)
		return nil, ErrProfileNotFound
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileAlreadyExists) {
			existing, getErr := s.repo.GetByID(ctx, userID)
			if getErr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile provisioned", "user_id", userID)
	return profile, nil
}
