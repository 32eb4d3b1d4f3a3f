package aggregation

import (
	"math"
	"sort"

	"expense-tracker/internal/models"
)

// Summarize folds report rows into per-category totals and income/expense
// totals. Rows whose category did not resolve are left out of the summary;
// their number is returned as skipped.
//
// Sums saturate at the int64 bounds instead of wrapping.
//
// ByCategory is ordered by descending total. Categories with equal totals
// keep the order in which they first appeared in rows.
func Summarize(rows []models.ReportRow) (summary models.ReportSummary, skipped int) {
	summary.ByCategory = make([]models.CategoryTotal, 0)
	index := make(map[string]int)

	for _, row := range rows {
		if !resolved(row) {
			skipped++
			continue
		}

		i, seen := index[*row.CategoryID]
		if !seen {
			i = len(summary.ByCategory)
			index[*row.CategoryID] = i
			summary.ByCategory = append(summary.ByCategory, models.CategoryTotal{
				CategoryID:   *row.CategoryID,
				CategoryName: *row.CategoryName,
				CategoryType: *row.CategoryType,
			})
		}
		summary.ByCategory[i].TotalAmount = addSaturating(summary.ByCategory[i].TotalAmount, row.Amount)

		switch *row.CategoryType {
		case models.TransactionTypeIncome:
			summary.Totals.Income = addSaturating(summary.Totals.Income, row.Amount)
		case models.TransactionTypeExpense:
			summary.Totals.Expense = addSaturating(summary.Totals.Expense, row.Amount)
		}
	}

	sort.SliceStable(summary.ByCategory, func(a, b int) bool {
		return summary.ByCategory[a].TotalAmount > summary.ByCategory[b].TotalAmount
	})

	summary.Totals.Balance = addSaturating(summary.Totals.Income, negateSaturating(summary.Totals.Expense))
	return summary, skipped
}

func resolved(row models.ReportRow) bool {
	return row.CategoryID != nil && *row.CategoryID != "" &&
		row.CategoryName != nil && row.CategoryType != nil
}

func addSaturating(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

func negateSaturating(a int64) int64 {
	if a == math.MinInt64 {
		return math.MaxInt64
	}
	return -a
}
