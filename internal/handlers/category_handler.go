package handlers

import (
	"fmt"
	"net/http"
	"time"

	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// categoryCacheTTL is advertised to clients; categories are reference data
const categoryCacheTTL = 5 * time.Minute

// CategoryHandler lists reference categories
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories returns categories ordered by type then name.
//
// Method: GET /api/v1/categories
// Query: type (optional, income|expense)
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return SendServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(categoryCacheTTL.Seconds())))

	return c.JSON(http.StatusOK, SuccessResponse{Data: categories})
}
