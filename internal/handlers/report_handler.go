package handlers

import (
	"net/http"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"
	"expense-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves aggregate reports over the caller's transactions
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CategoryReport returns per-category totals plus income, expense and balance.
//
// Method: GET /api/v1/reports/category
// Query: from_date, to_date (RFC 3339), type
func (h *ReportHandler) CategoryReport(c echo.Context) error {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var q validation.ListQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return SendError(c, errors.ValidationInvalidFormat)
	}

	filters, err := validation.ValidateListQuery(q)
	if err != nil {
		return SendServiceError(c, err)
	}

	summary, err := h.reportService.CategoryReport(c.Request().Context(), principal, filters)
	if err != nil {
		return SendServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "private, no-store")

	return c.JSON(http.StatusOK, SuccessResponse{Data: summary})
}
