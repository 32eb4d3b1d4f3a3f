package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"expense-tracker/internal/models"
	"expense-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	categoryService := service_mocks.NewMockCategoryServiceInterface(ctrl)
	handler := NewCategoryHandler(categoryService)
	e := echo.New()

	t.Run("lists by type", func(t *testing.T) {
		categories := []models.Category{
			{ID: uuid.New(), Name: "Freelance", Type: models.TransactionTypeIncome},
			{ID: uuid.New(), Name: "Salary", Type: models.TransactionTypeIncome},
		}
		categoryService.EXPECT().List(gomock.Any(), "income").Return(categories, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories?type=income", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ListCategories(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "private, max-age=300", rec.Header().Get("Cache-Control"))

		var resp struct {
			Data []models.Category `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		categoryService.EXPECT().List(gomock.Any(), "savings").Return(nil, models.ErrInvalidTransactionType)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories?type=savings", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ListCategories(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "CATEGORY_002")
	})
}
