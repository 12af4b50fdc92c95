package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := buildSummary(nil, "This Month")

	assertDecimal(t, "0", summary.TotalIncome)
	assertDecimal(t, "0", summary.TotalExpenses)
	assertDecimal(t, "0", summary.Balance)
	assert.Equal(t, 0, summary.TransactionCount)
	assert.Equal(t, "This Month", summary.Period)
}

func TestBuildSummary(t *testing.T) {
	rows := []typeTotal{
		{Type: "income", Total: dec("5200.50"), Count: 3},
		{Type: "expense", Total: dec("3150.25"), Count: 12},
	}

	summary := buildSummary(rows, "Last 3 Months")

	assertDecimal(t, "5200.50", summary.TotalIncome)
	assertDecimal(t, "3150.25", summary.TotalExpenses)
	assertDecimal(t, "2050.25", summary.Balance)
	assert.Equal(t, 15, summary.TransactionCount)
}

func TestBuildSummarySingleType(t *testing.T) {
	rows := []typeTotal{{Type: "expense", Total: dec("99.99"), Count: 2}}

	summary := buildSummary(rows, "This Month")

	assertDecimal(t, "0", summary.TotalIncome)
	assertDecimal(t, "99.99", summary.TotalExpenses)
	assertDecimal(t, "-99.99", summary.Balance)
	assert.Equal(t, 2, summary.TransactionCount)
}

func TestMonthlyTrendWindow(t *testing.T) {
	june := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		months     int
		year       int
		wantStart  int
		wantEnd    int
		wantTarget int
	}{
		{"explicit year runs to December", 6, 2024, 6, 11, 2024},
		{"no year ends at current month", 3, 0, 3, 5, 2024},
		{"clamps to January instead of wrapping", 24, 0, 0, 5, 2024},
		{"explicit year full span", 12, 2023, 0, 11, 2023},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, target := monthlyTrendWindow(tt.months, tt.year, june)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestBuildMonthlyTrendZeroFills(t *testing.T) {
	rows := []trendRow{
		{Bucket: "09", Type: "income", Total: dec("3200")},
		{Bucket: "10", Type: "expense", Total: dec("410.75")},
		{Bucket: "10", Type: "income", Total: dec("150")},
	}

	trend := buildMonthlyTrend(rows, 6, 11, 2024)

	require.Equal(t, []string{"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}, trend.Labels)
	require.Len(t, trend.Income, 6)
	require.Len(t, trend.Expenses, 6)
	assert.Equal(t, "Monthly trends for 2024", trend.Period)

	assertDecimal(t, "0", trend.Income[0])
	assertDecimal(t, "3200", trend.Income[2])
	assertDecimal(t, "150", trend.Income[3])
	assertDecimal(t, "0", trend.Expenses[2])
	assertDecimal(t, "410.75", trend.Expenses[3])
	assertDecimal(t, "0", trend.Expenses[5])
}

func TestBuildMonthlyTrendNoRows(t *testing.T) {
	trend := buildMonthlyTrend(nil, 0, 5, 2023)

	require.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, trend.Labels)
	for i := range trend.Labels {
		assertDecimal(t, "0", trend.Income[i])
		assertDecimal(t, "0", trend.Expenses[i])
	}
}

func TestBuildDailyTrendLeapFebruary(t *testing.T) {
	rows := []trendRow{
		{Bucket: "2024-02-03", Type: "expense", Total: dec("25.40")},
		{Bucket: "2024-02-29", Type: "income", Total: dec("1000")},
	}

	trend := buildDailyTrend(rows, 2024, time.February)

	require.Len(t, trend.Labels, 29)
	assert.Equal(t, "1", trend.Labels[0])
	assert.Equal(t, "29", trend.Labels[28])
	assert.Equal(t, "Daily breakdown for Feb 2024", trend.Period)

	assertDecimal(t, "25.40", trend.Expenses[2])
	assertDecimal(t, "0", trend.Income[2])
	assertDecimal(t, "1000", trend.Income[28])
}

func TestBuildDailyTrendMonthLengths(t *testing.T) {
	assert.Len(t, buildDailyTrend(nil, 2023, time.February).Labels, 28)
	assert.Len(t, buildDailyTrend(nil, 2024, time.April).Labels, 30)
	assert.Len(t, buildDailyTrend(nil, 2024, time.December).Labels, 31)
}

func TestBuildBreakdown(t *testing.T) {
	catalog := []Category{
		{ID: 1, Name: "Salary", Type: "income"},
		{ID: 8, Name: "Food & Dining", Type: "expense"},
		{ID: 9, Name: "Transportation", Type: "expense"},
		{ID: 11, Name: "Entertainment", Type: "expense"},
	}

	rows := []breakdownRow{
		{Type: "expense", CategoryID: 8, Total: dec("600")},
		{Type: "expense", CategoryID: 9, Total: dec("300")},
		{Type: "expense", CategoryID: 11, Total: dec("100")},
		{Type: "income", CategoryID: 1, Total: dec("4000")},
	}

	breakdown := buildBreakdown(rows, catalog, "This Month")

	require.Len(t, breakdown.Expenses, 3)
	assert.Equal(t, "Food & Dining", breakdown.Expenses[0].Category)
	assert.Equal(t, 60, breakdown.Expenses[0].Percentage)
	assert.Equal(t, 30, breakdown.Expenses[1].Percentage)
	assert.Equal(t, 10, breakdown.Expenses[2].Percentage)

	require.Len(t, breakdown.Income, 1)
	assert.Equal(t, "Salary", breakdown.Income[0].Category)
	assert.Equal(t, 100, breakdown.Income[0].Percentage)
	assert.Equal(t, "This Month", breakdown.Period)
}

func TestBuildBreakdownPercentagesSumNearHundred(t *testing.T) {
	rows := []breakdownRow{
		{Type: "expense", CategoryID: 8, Total: dec("100")},
		{Type: "expense", CategoryID: 9, Total: dec("100")},
		{Type: "expense", CategoryID: 11, Total: dec("100")},
	}

	breakdown := buildBreakdown(rows, []Category{
		{ID: 8, Name: "Food & Dining", Type: "expense"},
		{ID: 9, Name: "Transportation", Type: "expense"},
		{ID: 11, Name: "Entertainment", Type: "expense"},
	}, "This Month")

	sum := 0
	for _, item := range breakdown.Expenses {
		sum += item.Percentage
	}
	assert.InDelta(t, 100, sum, 2, "rounded percentages should sum to 100 within rounding error")
}

func TestBuildBreakdownStaleCategory(t *testing.T) {
	rows := []breakdownRow{
		{Type: "expense", CategoryID: 999, Total: dec("50")},
	}

	breakdown := buildBreakdown(rows, categoryCatalog, "This Month")

	require.Len(t, breakdown.Expenses, 1)
	assert.Equal(t, "Unknown", breakdown.Expenses[0].Category)
	assert.Equal(t, 100, breakdown.Expenses[0].Percentage)
}

func TestBuildBreakdownEmpty(t *testing.T) {
	breakdown := buildBreakdown(nil, categoryCatalog, "Custom Period")

	assert.NotNil(t, breakdown.Income)
	assert.NotNil(t, breakdown.Expenses)
	assert.Empty(t, breakdown.Income)
	assert.Empty(t, breakdown.Expenses)
}
