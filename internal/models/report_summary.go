package models

// ReportRow is one transaction joined to its category. The category columns
// are nil when the category no longer resolves.
type ReportRow struct {
	CategoryID   *string
	CategoryName *string
	CategoryType *string
	Amount       int64
}

// CategoryTotal contains the summed amount for one category
type CategoryTotal struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
	TotalAmount  int64  `json:"total_amount"`
}

type ReportTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// ReportSummary is derived on every request and never persisted.
type ReportSummary struct {
	ByCategory []CategoryTotal `json:"by_category"`
	Totals     ReportTotals    `json:"totals"`
}
