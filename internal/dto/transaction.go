package dto

import (
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// minorUnitsPerMajor converts stored cents into the display currency unit.
const minorUnitsPerMajor = 2

// CategoryResponse is the category embedded in transaction responses
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// TransactionResponse is the enriched transaction returned by the API
type TransactionResponse struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	Type          string            `json:"type"`
	Amount        int64             `json:"amount"`
	AmountDisplay string            `json:"amount_display"`
	CategoryID    uuid.UUID         `json:"category_id"`
	Note          *string           `json:"note"`
	OccurredAt    time.Time         `json:"occurred_at"`
	CreatedAt     time.Time         `json:"created_at"`
	Category      *CategoryResponse `json:"category,omitempty"`
}

// PaginationParams contains pagination parameters
type PaginationParams struct {
	Cursor string `query:"cursor"`
	Limit  int    `query:"limit"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
	Limit      int    `json:"limit"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// FormatMinorUnits renders an amount in the smallest unit as a major-unit
// decimal string, e.g. 12345 -> "123.45".
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -minorUnitsPerMajor).StringFixed(minorUnitsPerMajor)
}

// NewTransactionResponse maps a stored transaction to its API shape
func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		Type:          t.Type,
		Amount:        t.Amount,
		AmountDisplay: FormatMinorUnits(t.Amount),
		CategoryID:    t.CategoryID,
		Note:          t.Note,
		OccurredAt:    t.OccurredAt,
		CreatedAt:     t.CreatedAt,
	}
	if t.Category != nil {
		resp.Category = &CategoryResponse{
			ID:   t.Category.ID,
			Name: t.Category.Name,
			Type: t.Category.Type,
		}
	}
	return resp
}

// NewTransactionResponses maps a page of transactions
func NewTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		result = append(result, NewTransactionResponse(&transactions[i]))
	}
	return result
}
