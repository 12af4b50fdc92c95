package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

// monthlyTrendWindow computes the 0-indexed month window for a monthly trend
// request. With an explicit year the window runs to December; otherwise it
// ends at the current month of now. The start clamps to January rather than
// wrapping into the previous year.
func monthlyTrendWindow(months, year int, now time.Time) (startMonth, endMonth, targetYear int) {
	targetYear = year
	if targetYear == 0 {
		targetYear = now.Year()
	}

	endMonth = 11
	if year == 0 {
		endMonth = int(now.Month()) - 1
	}

	startMonth = endMonth - months + 1
	if startMonth < 0 {
		startMonth = 0
	}
	return startMonth, endMonth, targetYear
}

// typeTotal is one row of a per-type grouped aggregate
type typeTotal struct {
	Type  string
	Total decimal.Decimal
	Count int
}

// trendRow is one (bucket, type) cell of a time-bucketed aggregate. Bucket is
// a zero-padded month number in monthly mode and a YYYY-MM-DD date in daily
// mode.
type trendRow struct {
	Bucket string
	Type   string
	Total  decimal.Decimal
}

// breakdownRow is one (type, category) cell of a category aggregate
type breakdownRow struct {
	Type       string
	CategoryID int
	Total      decimal.Decimal
}

// buildSummary folds per-type totals into the summary payload. Types with no
// rows contribute zero; balance is income minus expenses.
func buildSummary(rows []typeTotal, label string) SummaryData {
	summary := SummaryData{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Period:        label,
	}

	for _, r := range rows {
		switch r.Type {
		case "income":
			summary.TotalIncome = r.Total
		case "expense":
			summary.TotalExpenses = r.Total
		}
		summary.TransactionCount += r.Count
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// buildMonthlyTrend produces one bucket per month of [startMonth, endMonth]
// (0-indexed within year). Months without rows are zero-filled, never
// dropped, so the three output slices stay index-parallel.
func buildMonthlyTrend(rows []trendRow, startMonth, endMonth, year int) TrendData {
	trend := TrendData{
		Labels:   make([]string, 0, endMonth-startMonth+1),
		Income:   make([]decimal.Decimal, 0, endMonth-startMonth+1),
		Expenses: make([]decimal.Decimal, 0, endMonth-startMonth+1),
		Period:   fmt.Sprintf("Monthly trends for %d", year),
	}

	totals := make(map[string]map[string]decimal.Decimal)
	for _, r := range rows {
		if totals[r.Bucket] == nil {
			totals[r.Bucket] = make(map[string]decimal.Decimal)
		}
		totals[r.Bucket][r.Type] = r.Total
	}

	for m := startMonth; m <= endMonth; m++ {
		bucket := fmt.Sprintf("%02d", m+1)
		trend.Labels = append(trend.Labels, monthNames[m])
		trend.Income = append(trend.Income, bucketTotal(totals, bucket, "income"))
		trend.Expenses = append(trend.Expenses, bucketTotal(totals, bucket, "expense"))
	}

	return trend
}

// buildDailyTrend produces one bucket per calendar day of the given month,
// zero-filled for days with no activity
func buildDailyTrend(rows []trendRow, year int, month time.Month) TrendData {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	trend := TrendData{
		Labels:   make([]string, 0, daysInMonth),
		Income:   make([]decimal.Decimal, 0, daysInMonth),
		Expenses: make([]decimal.Decimal, 0, daysInMonth),
		Period:   fmt.Sprintf("Daily breakdown for %s %d", monthNames[int(month)-1], year),
	}

	totals := make(map[string]map[string]decimal.Decimal)
	for _, r := range rows {
		if totals[r.Bucket] == nil {
			totals[r.Bucket] = make(map[string]decimal.Decimal)
		}
		totals[r.Bucket][r.Type] = r.Total
	}

	for day := 1; day <= daysInMonth; day++ {
		bucket := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		trend.Labels = append(trend.Labels, strconv.Itoa(day))
		trend.Income = append(trend.Income, bucketTotal(totals, bucket, "income"))
		trend.Expenses = append(trend.Expenses, bucketTotal(totals, bucket, "expense"))
	}

	return trend
}

func bucketTotal(totals map[string]map[string]decimal.Decimal, bucket, txType string) decimal.Decimal {
	if byType, ok := totals[bucket]; ok {
		if total, ok := byType[txType]; ok {
			return total
		}
	}
	return decimal.Zero
}

// buildBreakdown resolves grouped (type, category) totals against the catalog
// and computes each group's integer percentage of its type total. Rows are
// expected pre-sorted descending by amount. A stale category id degrades to
// "Unknown"; a zero type total yields zero percentages.
func buildBreakdown(rows []breakdownRow, catalog []Category, label string) CategoryBreakdown {
	breakdown := CategoryBreakdown{
		Income:   make([]BreakdownItem, 0),
		Expenses: make([]BreakdownItem, 0),
		Period:   label,
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, r := range rows {
		switch r.Type {
		case "income":
			totalIncome = totalIncome.Add(r.Total)
		case "expense":
			totalExpenses = totalExpenses.Add(r.Total)
		}
	}

	hundred := decimal.NewFromInt(100)
	percentage := func(amount, total decimal.Decimal) int {
		if !total.IsPositive() {
			return 0
		}
		return int(amount.Mul(hundred).Div(total).Round(0).IntPart())
	}

	for _, r := range rows {
		name := "Unknown"
		if category, ok := categoryByID(catalog, r.CategoryID); ok {
			name = category.Name
		}

		switch r.Type {
		case "income":
			breakdown.Income = append(breakdown.Income, BreakdownItem{
				Category:   name,
				Amount:     r.Total,
				Percentage: percentage(r.Total, totalIncome),
			})
		case "expense":
			breakdown.Expenses = append(breakdown.Expenses, BreakdownItem{
				Category:   name,
				Amount:     r.Total,
				Percentage: percentage(r.Total, totalExpenses),
			})
		}
	}

	return breakdown
}

// querySummary runs the single grouped query behind the summary endpoint
func querySummary(userID int, startDate, endDate string) ([]typeTotal, error) {
	rows, err := db.Query(`
		SELECT type,
			COALESCE(SUM(amount), 0) as total,
			COUNT(*) as count
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []typeTotal
	for rows.Next() {
		var t typeTotal
		if err := rows.Scan(&t.Type, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// queryMonthlyTrend groups by calendar month within one year's month window
// (1-based bounds)
func queryMonthlyTrend(userID, year, firstMonth, lastMonth int) ([]trendRow, error) {
	rows, err := db.Query(`
		SELECT to_char(date, 'MM') as month,
			type,
			COALESCE(SUM(amount), 0) as total
		FROM transactions
		WHERE user_id = $1
			AND EXTRACT(YEAR FROM date) = $2
			AND EXTRACT(MONTH FROM date) BETWEEN $3 AND $4
		GROUP BY to_char(date, 'MM'), type
		ORDER BY month`,
		userID, year, firstMonth, lastMonth,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []trendRow
	for rows.Next() {
		var r trendRow
		if err := rows.Scan(&r.Bucket, &r.Type, &r.Total); err != nil {
			return nil, err
		}
		trend = append(trend, r)
	}
	return trend, rows.Err()
}

// queryDailyTrend groups by calendar day across an inclusive date range
func queryDailyTrend(userID int, startDate, endDate string) ([]trendRow, error) {
	rows, err := db.Query(`
		SELECT to_char(date, 'YYYY-MM-DD') as day,
			type,
			COALESCE(SUM(amount), 0) as total
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY to_char(date, 'YYYY-MM-DD'), type
		ORDER BY day`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []trendRow
	for rows.Next() {
		var r trendRow
		if err := rows.Scan(&r.Bucket, &r.Type, &r.Total); err != nil {
			return nil, err
		}
		trend = append(trend, r)
	}
	return trend, rows.Err()
}

// queryBreakdown groups by (type, category) over a date range, skipping
// uncategorized rows
func queryBreakdown(userID int, startDate, endDate string) ([]breakdownRow, error) {
	rows, err := db.Query(`
		SELECT type,
			category_id,
			COALESCE(SUM(amount), 0) as total
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3 AND category_id IS NOT NULL
		GROUP BY type, category_id
		ORDER BY total DESC`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []breakdownRow
	for rows.Next() {
		var r breakdownRow
		if err := rows.Scan(&r.Type, &r.CategoryID, &r.Total); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, r)
	}
	return breakdown, rows.Err()
}

// chartDateRange resolves the effective date bounds for a chart request.
// Explicit startDate+endDate override the period token entirely.
func chartDateRange(c *gin.Context, now time.Time) (DateRange, bool) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate != "" && endDate != "" {
		if !isValidDate(startDate) || !isValidDate(endDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": "dates must be YYYY-MM-DD"})
			return DateRange{}, false
		}
		return DateRange{StartDate: startDate, EndDate: endDate, Label: "Custom Period"}, true
	}

	return resolveDateRange(c.Query("period"), now), true
}

// getSummary returns totals and balance for the requested period
func getSummary(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	dateRange, ok := chartDateRange(c, time.Now())
	if !ok {
		return
	}

	cacheKey := userCacheKey(userID, "charts", "summary", dateRange.StartDate, dateRange.EndDate)
	var cached SummaryData
	if cacheGetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	totals, err := querySummary(userID, dateRange.StartDate, dateRange.EndDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := buildSummary(totals, dateRange.Label)

	cacheSetJSON(ctx, cacheKey, summary, chartsCacheTTL)
	c.JSON(http.StatusOK, summary)
}

// getTrends returns the time-bucketed income/expenses series. Monthly mode
// windows whole months within one target year; any other period value falls
// back to a daily breakdown of the current month.
func getTrends(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	now := time.Now()

	period := c.DefaultQuery("period", "monthly")

	months := defaultTrendMonths
	if v, err := strconv.Atoi(c.Query("months")); err == nil {
		months = v
	}
	if months < 1 {
		months = 1
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	year := 0
	if v, err := strconv.Atoi(c.Query("year")); err == nil && v > 0 {
		year = v
	}

	startMonth, endMonth, targetYear := monthlyTrendWindow(months, year, now)

	cacheKey := userCacheKey(userID, "charts", "trends", period, strconv.Itoa(months), strconv.Itoa(year))
	var cached TrendData
	if cacheGetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	var trend TrendData

	if period == "monthly" {
		rows, err := queryMonthlyTrend(userID, targetYear, startMonth+1, endMonth+1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		trend = buildMonthlyTrend(rows, startMonth, endMonth, targetYear)
	} else {
		// Daily breakdown of the current month of "now", in the target year
		month := now.Month()
		startDate := time.Date(targetYear, month, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)
		endDate := time.Date(targetYear, month+1, 0, 0, 0, 0, 0, now.Location()).Format(dateLayout)

		rows, err := queryDailyTrend(userID, startDate, endDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		trend = buildDailyTrend(rows, targetYear, month)
	}

	cacheSetJSON(ctx, cacheKey, trend, chartsCacheTTL)
	c.JSON(http.StatusOK, trend)
}

// getCategoryBreakdown returns per-category totals and percentages for the
// requested period
func getCategoryBreakdown(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	dateRange, ok := chartDateRange(c, time.Now())
	if !ok {
		return
	}

	cacheKey := userCacheKey(userID, "charts", "breakdown", dateRange.StartDate, dateRange.EndDate)
	var cached CategoryBreakdown
	if cacheGetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	rows, err := queryBreakdown(userID, dateRange.StartDate, dateRange.EndDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	breakdown := buildBreakdown(rows, categoryCatalog, dateRange.Label)

	cacheSetJSON(ctx, cacheKey, breakdown, chartsCacheTTL)
	c.JSON(http.StatusOK, breakdown)
}
