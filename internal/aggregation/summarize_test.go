package aggregation

import (
	"encoding/json"
	"math"
	"testing"

	"expense-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, name, typ string, amount int64) models.ReportRow {
	return models.ReportRow{CategoryID: &id, CategoryName: &name, CategoryType: &typ, Amount: amount}
}

func TestSummarize_Scenario(t *testing.T) {
	rows := []models.ReportRow{
		row("food", "Food", "expense", 5000),
		row("food", "Food", "expense", 1500),
		row("salary", "Salary", "income", 200000),
	}

	summary, skipped := Summarize(rows)

	assert.Zero(t, skipped)
	assert.Equal(t, []models.CategoryTotal{
		{CategoryID: "salary", CategoryName: "Salary", CategoryType: "income", TotalAmount: 200000},
		{CategoryID: "food", CategoryName: "Food", CategoryType: "expense", TotalAmount: 6500},
	}, summary.ByCategory)
	assert.Equal(t, models.ReportTotals{Income: 200000, Expense: 6500, Balance: 193500}, summary.Totals)
}

func TestSummarize_Empty(t *testing.T) {
	for _, rows := range [][]models.ReportRow{nil, {}} {
		summary, skipped := Summarize(rows)

		assert.Zero(t, skipped)
		require.NotNil(t, summary.ByCategory)
		assert.Empty(t, summary.ByCategory)
		assert.Equal(t, models.ReportTotals{}, summary.Totals)
	}

	body, err := json.Marshal(models.ReportSummary{ByCategory: []models.CategoryTotal{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"by_category":[],"totals":{"income":0,"expense":0,"balance":0}}`, string(body))
}

func TestSummarize_TiesKeepFirstSeenOrder(t *testing.T) {
	rows := []models.ReportRow{
		row("c", "Coffee", "expense", 300),
		row("a", "Books", "expense", 300),
		row("b", "Bonus", "income", 900),
		row("d", "Dining", "expense", 300),
	}

	summary, _ := Summarize(rows)

	ids := make([]string, 0, len(summary.ByCategory))
	for _, ct := range summary.ByCategory {
		ids = append(ids, ct.CategoryID)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids)
}

func TestSummarize_FirstSeenMetadataWins(t *testing.T) {
	rows := []models.ReportRow{
		row("food", "Food", "expense", 100),
		row("food", "Groceries", "expense", 100),
	}

	summary, _ := Summarize(rows)

	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "Food", summary.ByCategory[0].CategoryName)
	assert.Equal(t, int64(200), summary.ByCategory[0].TotalAmount)
}

func TestSummarize_SkipsOrphans(t *testing.T) {
	name, typ := "Ghost", "expense"
	rows := []models.ReportRow{
		row("food", "Food", "expense", 1000),
		{Amount: 99999},
		{CategoryName: &name, CategoryType: &typ, Amount: 5},
		row("salary", "Salary", "income", 2000),
	}

	summary, skipped := Summarize(rows)

	assert.Equal(t, 2, skipped)
	assert.Len(t, summary.ByCategory, 2)
	assert.Equal(t, models.ReportTotals{Income: 2000, Expense: 1000, Balance: 1000}, summary.Totals)
}

func TestSummarize_InvariantsOnRandomInput(t *testing.T) {
	categories := []struct{ id, name, typ string }{
		{"food", "Food", "expense"},
		{"rent", "Rent", "expense"},
		{"salary", "Salary", "income"},
		{"gift", "Gift", "income"},
		{"fun", "Fun", "expense"},
	}

	for i := 0; i < 100; i++ {
		n := gofakeit.IntRange(0, 60)
		rows := make([]models.ReportRow, 0, n)
		var wantIncome, wantExpense int64
		for j := 0; j < n; j++ {
			c := categories[gofakeit.IntRange(0, len(categories)-1)]
			amount := int64(gofakeit.IntRange(1, 1_000_000))
			rows = append(rows, row(c.id, c.name, c.typ, amount))
			if c.typ == "income" {
				wantIncome += amount
			} else {
				wantExpense += amount
			}
		}

		first, _ := Summarize(rows)
		second, _ := Summarize(rows)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		assert.Equal(t, wantIncome, first.Totals.Income)
		assert.Equal(t, wantExpense, first.Totals.Expense)
		assert.Equal(t, first.Totals.Income-first.Totals.Expense, first.Totals.Balance)

		var sum int64
		for k, ct := range first.ByCategory {
			sum += ct.TotalAmount
			if k > 0 {
				assert.GreaterOrEqual(t, first.ByCategory[k-1].TotalAmount, ct.TotalAmount)
			}
		}
		assert.Equal(t, wantIncome+wantExpense, sum)

		reversed := make([]models.ReportRow, len(rows))
		for k := range rows {
			reversed[len(rows)-1-k] = rows[k]
		}
		other, _ := Summarize(reversed)
		assert.Equal(t, first.Totals, other.Totals)
		assert.ElementsMatch(t, first.ByCategory, other.ByCategory)
	}
}

func TestSummarize_SaturatesInsteadOfWrapping(t *testing.T) {
	rows := []models.ReportRow{
		row("salary", "Salary", "income", math.MaxInt64),
		row("salary", "Salary", "income", math.MaxInt64),
		row("bonus", "Bonus", "income", 10),
		row("rent", "Rent", "expense", math.MaxInt64),
		row("rent", "Rent", "expense", 1),
	}

	summary, skipped := Summarize(rows)

	assert.Zero(t, skipped)
	require.Len(t, summary.ByCategory, 3)
	assert.Equal(t, "salary", summary.ByCategory[0].CategoryID)
	assert.Equal(t, int64(math.MaxInt64), summary.ByCategory[0].TotalAmount)
	assert.Equal(t, "rent", summary.ByCategory[1].CategoryID)
	assert.Equal(t, int64(math.MaxInt64), summary.ByCategory[1].TotalAmount)
	assert.Equal(t, int64(10), summary.ByCategory[2].TotalAmount)
	assert.Equal(t, models.ReportTotals{Income: math.MaxInt64, Expense: math.MaxInt64, Balance: 0}, summary.Totals)
}

func TestAddSaturating(t *testing.T) {
	testCases := []struct {
		a, b, want int64
	}{
		{1, 2, 3},
		{math.MaxInt64, 1, math.MaxInt64},
		{math.MaxInt64 - 1, 1, math.MaxInt64},
		{math.MinInt64, -1, math.MinInt64},
		{math.MinInt64, math.MaxInt64, -1},
		{-5, 3, -2},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, addSaturating(tc.a, tc.b), "%d + %d", tc.a, tc.b)
	}
	assert.Equal(t, int64(math.MaxInt64), negateSaturating(math.MinInt64))
}
