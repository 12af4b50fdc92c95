package main

import (
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction owned by a single user
type Transaction struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   *int            `json:"category_id"`
	Description  *string         `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	CategoryName *string         `json:"category_name,omitempty"`
	CategoryType *string         `json:"category_type,omitempty"`
}

// Category represents a transaction category from the static catalog
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// User represents a registered account
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// TransactionFilters holds the query parameters for the transaction list.
// Optional filters combine with AND; pagination and ordering are always set.
type TransactionFilters struct {
	Type      string
	Category  int
	StartDate string
	EndDate   string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	Order     string
}

// Pagination describes the page window of a transaction list response
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// SummaryData contains the aggregate totals for a date range
type SummaryData struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	Balance          decimal.Decimal `json:"balance"`
	Period           string          `json:"period"`
	TransactionCount int             `json:"transactionCount"`
}

// TrendData is a chronological series of time buckets with parallel
// income/expenses values. The three slices always have equal length.
type TrendData struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
	Period   string            `json:"period"`
}

// BreakdownItem is one category's share of a type total
type BreakdownItem struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int             `json:"percentage"`
}

// CategoryBreakdown groups amounts by category for each transaction type
type CategoryBreakdown struct {
	Income   []BreakdownItem `json:"income"`
	Expenses []BreakdownItem `json:"expenses"`
	Period   string          `json:"period"`
}
