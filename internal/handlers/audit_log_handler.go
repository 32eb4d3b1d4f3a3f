package handlers

import (
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditLogHandler lists the caller's own audit trail
type AuditLogHandler struct {
	auditService services.AuditServiceInterface
}

func NewAuditLogHandler(auditService services.AuditServiceInterface) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// ListAuditLogs handles GET /api/v1/audit-logs?offset=&limit=
func (h *AuditLogHandler) ListAuditLogs(c echo.Context) error {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	req := dto.ListAuditLogsRequest{
		Offset: getIntParam(c, "offset", 0),
		Limit:  getIntParam(c, "limit", services.DefaultPageSize),
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("offset must be >= 0 and limit between 1 and 100"))
	}

	logs, total, err := h.auditService.ListOwn(c.Request().Context(), principal, req.Offset, req.Limit)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewAuditLogListResponse(logs, total, req.Offset, req.Limit),
	})
}
