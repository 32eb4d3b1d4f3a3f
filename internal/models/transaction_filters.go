package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction queries
type TransactionFilters struct {
	UserID   uuid.UUID
	FromDate *time.Time
	ToDate   *time.Time
	Type     string

	// Keyset cursor: rows strictly after (CursorOccurredAt, CursorID) in
	// occurred_at DESC, id DESC order.
	CursorOccurredAt *time.Time
	CursorID         uuid.UUID

	Limit int
}

// ReportFilters scopes a category report.
type ReportFilters struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     string
}
