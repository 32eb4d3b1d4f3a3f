package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services"
	"expense-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxRequestBodyBytes bounds a transaction create payload
const maxRequestBodyBytes = 64 << 10

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// cursorData represents the data encoded in a pagination cursor
type cursorData struct {
	OccurredAt    time.Time `json:"occurred_at"`
	TransactionID uuid.UUID `json:"transaction_id"`
}

// encodeCursor creates a cursor string from the last row of a page
func encodeCursor(occurredAt time.Time, transactionID uuid.UUID) string {
	data := cursorData{
		OccurredAt:    occurredAt,
		TransactionID: transactionID,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(jsonData)
}

// decodeCursor decodes a cursor string to timestamp and transaction ID
func decodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	if cursor == "" {
		return time.Time{}, uuid.Nil, fmt.Errorf("empty cursor")
	}

	jsonData, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	var data cursorData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	if data.TransactionID == uuid.Nil || data.OccurredAt.IsZero() {
		return time.Time{}, uuid.Nil, fmt.Errorf("incomplete cursor")
	}

	return data.OccurredAt, data.TransactionID, nil
}

// CreateTransaction records an income or expense for the caller
//
// Method: POST /api/v1/transactions
// Body: {type, amount, category_id, note?, occurred_at}
// Success: 201 with the transaction joined to its category
// Errors: 400 VALIDATION_001 / CATEGORY_001, 401, 422 TRANSACTION_003, 500
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	input, err := validation.DecodeInput(http.MaxBytesReader(c.Response(), c.Request().Body, maxRequestBodyBytes))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Request body must be a single JSON object"))
	}

	transaction, err := h.transactionService.Create(c.Request().Context(), principal, input)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data: dto.NewTransactionResponse(transaction),
	})
}

// ListTransactions returns the caller's transactions, newest first
//
// Method: GET /api/v1/transactions
// Query: from_date, to_date (RFC 3339), type, cursor, limit (max 100)
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	pagination, err := parsePaginationParams(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	filters.Limit = pagination.Limit

	if pagination.Cursor != "" {
		cursorTime, cursorID, err := decodeCursor(pagination.Cursor)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid cursor"))
		}
		filters.CursorOccurredAt = &cursorTime
		filters.CursorID = cursorID
	}

	transactions, hasMore, err := h.transactionService.List(c.Request().Context(), principal, filters)
	if err != nil {
		return SendServiceError(c, err)
	}

	var nextCursor string
	if hasMore && len(transactions) > 0 {
		last := &transactions[len(transactions)-1]
		nextCursor = encodeCursor(last.OccurredAt, last.ID)
	}

	c.Response().Header().Set("Cache-Control", "private, no-store")

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.ListTransactionsResponse{
			Transactions: dto.NewTransactionResponses(transactions),
			Pagination: dto.PaginationInfo{
				HasMore:    hasMore,
				NextCursor: nextCursor,
				Limit:      pagination.Limit,
			},
		},
	})
}

// parseTransactionFilters validates the shared list query parameters
func parseTransactionFilters(c echo.Context) (models.TransactionFilters, error) {
	var q validation.ListQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return models.TransactionFilters{}, err
	}

	report, err := validation.ValidateListQuery(q)
	if err != nil {
		return models.TransactionFilters{}, err
	}

	return models.TransactionFilters{
		FromDate: report.FromDate,
		ToDate:   report.ToDate,
		Type:     report.Type,
	}, nil
}

// parsePaginationParams parses pagination parameters from query string
func parsePaginationParams(c echo.Context) (dto.PaginationParams, error) {
	params := dto.PaginationParams{
		Limit: services.DefaultPageSize,
	}

	if cursor := c.QueryParam("cursor"); cursor != "" {
		params.Cursor = cursor
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, fmt.Errorf("invalid limit parameter")
		}

		if limit < 1 {
			return params, fmt.Errorf("limit must be at least 1")
		}

		if limit > services.MaxPageSize {
			limit = services.MaxPageSize
		}

		params.Limit = limit
	}

	return params, nil
}

// GetTransaction returns one of the caller's transactions.
// Transactions owned by someone else are reported as not found.
//
// Method: GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionInvalidID, errors.WithDetails("Transaction ID must be a valid UUID"))
	}

	transaction, err := h.transactionService.Get(c.Request().Context(), principal, transactionID)
	if err != nil {
		return SendServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "private, no-store")

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewTransactionResponse(transaction),
	})
}

// DeleteTransaction removes a transaction. Administrators only.
//
// Method: DELETE /api/v1/transactions/:id
// Success: 204
// Errors: 400 TRANSACTION_002, 401, 403 AUTH_005, 404 TRANSACTION_001, 500
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	principal, err := getPrincipalFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.TransactionInvalidID, errors.WithDetails("Transaction ID must be a valid UUID"))
	}

	if err := h.transactionService.Delete(c.Request().Context(), principal, transactionID); err != nil {
		return SendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateTransaction answers PUT/PATCH; transactions are immutable.
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	return SendError(c, errors.TransactionImmutable)
}
