package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	defaultSortBy    = "date"
)

// transactionSortColumns is the allow-list for ORDER BY. Anything outside it
// silently falls back to the default column; user input never reaches the
// ordering clause directly.
var transactionSortColumns = map[string]bool{
	"date":       true,
	"amount":     true,
	"created_at": true,
	"type":       true,
}

// parseTransactionFilters reads list query parameters from the request,
// rejecting malformed dates and clamping pagination into safe bounds.
func parseTransactionFilters(c *gin.Context) (TransactionFilters, error) {
	f := TransactionFilters{
		Type:      c.Query("type"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		Order:     c.Query("order"),
	}

	if f.Type != "" && f.Type != "income" && f.Type != "expense" {
		return f, fmt.Errorf("invalid transaction type %q", f.Type)
	}
	if f.StartDate != "" && !isValidDate(f.StartDate) {
		return f, fmt.Errorf("invalid startDate %q", f.StartDate)
	}
	if f.EndDate != "" && !isValidDate(f.EndDate) {
		return f, fmt.Errorf("invalid endDate %q", f.EndDate)
	}
	if v := c.Query("category"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("invalid category %q", v)
		}
		f.Category = id
	}
	if v := c.Query("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}

	return normalizeFilters(f), nil
}

// normalizeFilters clamps pagination and applies the sort allow-list
func normalizeFilters(f TransactionFilters) TransactionFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	if !transactionSortColumns[f.SortBy] {
		f.SortBy = defaultSortBy
	}
	if f.Order != "asc" && f.Order != "desc" {
		f.Order = "desc"
	}
	return f
}

// transactionWhere builds the conjunctive WHERE clause for a single owner's
// filtered ledger as parameterized conditions. Ownership is always the first
// condition and cannot be widened by the filter set.
func transactionWhere(userID int, f TransactionFilters) ([]string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Category > 0 {
		add("category_id = $%d", f.Category)
	}
	if f.Search != "" {
		add("description ILIKE $%d", "%"+f.Search+"%")
	}
	if f.StartDate != "" {
		add("date >= $%d", f.StartDate)
	}
	if f.EndDate != "" {
		add("date <= $%d", f.EndDate)
	}

	return conds, args
}

// buildTransactionsQuery produces the paged SELECT for a filtered ledger read
func buildTransactionsQuery(userID int, f TransactionFilters) (string, []any) {
	conds, args := transactionWhere(userID, f)

	query := "SELECT " + transactionColumns + " FROM transactions WHERE " + strings.Join(conds, " AND ")

	query += fmt.Sprintf(" ORDER BY %s %s", f.SortBy, strings.ToUpper(f.Order))

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return query, args
}

// buildTransactionsCountQuery produces the total match count for the same
// filter set, ignoring pagination
func buildTransactionsCountQuery(userID int, f TransactionFilters) (string, []any) {
	conds, args := transactionWhere(userID, f)
	query := "SELECT COUNT(*) FROM transactions WHERE " + strings.Join(conds, " AND ")
	return query, args
}
