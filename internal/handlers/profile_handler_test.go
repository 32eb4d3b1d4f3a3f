package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services"
	"expense-tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	profileService := service_mocks.NewMockProfileServiceInterface(ctrl)
	handler := NewProfileHandler(profileService)
	e := echo.New()

	t.Run("returns own profile", func(t *testing.T) {
		profile := &models.Profile{
			ID:        uuid.New(),
			Email:     gofakeit.Email(),
			Role:      models.RoleAdmin,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		profileService.EXPECT().GetProfile(gomock.Any(), profile.ID).Return(profile, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(UserIDContextKey, profile.ID)

		require.NoError(t, handler.GetProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data dto.ProfileResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, profile.Email, resp.Data.Email)
		assert.Equal(t, models.RoleAdmin, resp.Data.Role)
	})

	t.Run("profile missing", func(t *testing.T) {
		userID := uuid.New()
		profileService.EXPECT().GetProfile(gomock.Any(), userID).Return(nil, services.ErrProfileNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(UserIDContextKey, userID)

		require.NoError(t, handler.GetProfile(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "PROFILE_001")
	})

	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.GetProfile(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
