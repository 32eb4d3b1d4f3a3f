package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"expense-tracker/internal/authz"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services"
	"expense-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// 1. SendError - client and business errors (4xx)
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithFieldErrors(...))
//    - Authorization errors: SendError(c, errors.AuthInsufficientPermission)
//    - Not found errors: SendError(c, errors.TransactionNotFound)
//
// 2. SendSystemError - internal errors (500). The cause is logged, never returned.
//
// 3. SendServiceError - maps a service sentinel error onto one of the above.
//
// DO NOT USE echo.NewHTTPError() or c.JSON() for errors in handlers.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)
	slog.ErrorContext(c.Request().Context(), "request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"error", internalErr,
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// ValidationFailure converts a validation error into the API code and field
// list. Type mismatches get their own code.
func ValidationFailure(verr *validation.ValidationError) (errors.ErrorCode, errors.ErrorOption) {
	fields := make([]errors.FieldDetail, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields = append(fields, errors.FieldDetail{
			Field:   fe.Field,
			Code:    string(fe.Code),
			Message: fe.Message,
		})
	}

	code := errors.ValidationGeneral
	if verr.Has(validation.CodeTypeMismatch) {
		code = errors.TransactionTypeMismatch
	}
	return code, errors.WithFieldErrors(fields...)
}

// SendServiceError maps errors returned by the service layer
func SendServiceError(c echo.Context, err error) error {
	var verr *validation.ValidationError
	if stderrors.As(err, &verr) {
		code, opt := ValidationFailure(verr)
		return SendError(c, code, opt)
	}

	switch {
	case stderrors.Is(err, authz.ErrUnauthenticated):
		return SendError(c, errors.AuthUnauthenticated)
	case stderrors.Is(err, authz.ErrForbidden), stderrors.Is(err, authz.ErrNotOwner):
		return SendError(c, errors.AuthInsufficientPermission)
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	case stderrors.Is(err, services.ErrProfileNotFound):
		return SendError(c, errors.ProfileNotFound)
	case stderrors.Is(err, models.ErrTransactionImmutable):
		return SendError(c, errors.TransactionImmutable)
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, errors.CategoryInvalidType)
	case stderrors.Is(err, services.ErrInvalidPagination):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}
