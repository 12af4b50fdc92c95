package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, type, amount, category_id, description,
	to_char(date, 'YYYY-MM-DD'), created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.Amount, &t.CategoryID, &t.Description,
		&t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// enrichCategory attaches the category name and type from the in-memory
// catalog. Transactions with no category or a stale id pass through untouched.
func enrichCategory(t *Transaction, catalog []Category) {
	if t.CategoryID == nil {
		return
	}
	if category, ok := categoryByID(catalog, *t.CategoryID); ok {
		t.CategoryName = &category.Name
		t.CategoryType = &category.Type
	}
}

// fetchTransaction reads one row scoped by (id, owner). A row belonging to
// another owner surfaces as sql.ErrNoRows, indistinguishable from absence.
func fetchTransaction(id, userID int) (Transaction, error) {
	row := db.QueryRow(
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return t, err
	}
	enrichCategory(&t, categoryCatalog)
	return t, nil
}

// fetchTransactions runs the filtered, sorted, paginated list query
func fetchTransactions(userID int, f TransactionFilters) ([]Transaction, error) {
	query, args := buildTransactionsQuery(userID, f)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// ensure empty array ([]) instead of null when no rows
	transactions := make([]Transaction, 0)

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		enrichCategory(&t, categoryCatalog)
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// fetchTransactionsCount returns the full match count, ignoring pagination
func fetchTransactionsCount(userID int, f TransactionFilters) (int, error) {
	query, args := buildTransactionsCountQuery(userID, f)

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type transactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// getTransactions lists the caller's transactions with filtering, sorting
// and pagination, with a short-lived cached response per owner
func getTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	filters, err := parseTransactionFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	cacheKey := userCacheKey(userID, "transactions", c.Request.URL.RawQuery)
	var cached transactionListResponse
	if cacheGetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	transactions, err := fetchTransactions(userID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total, err := fetchTransactionsCount(userID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (total + filters.Limit - 1) / filters.Limit
	response := transactionListResponse{
		Transactions: transactions,
		Pagination: Pagination{
			Page:       filters.Page,
			Limit:      filters.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    filters.Page < totalPages,
			HasPrev:    filters.Page > 1,
		},
	}

	cacheSetJSON(ctx, cacheKey, response, listCacheTTL)
	c.JSON(http.StatusOK, response)
}

type transactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  *int            `json:"category_id"`
	Description *string         `json:"description"`
	Date        string          `json:"date" binding:"required"`
}

func (r transactionRequest) validate() error {
	if !r.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if !isValidDate(r.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}
	if r.Description != nil && len(*r.Description) > 255 {
		return errors.New("description must be at most 255 characters")
	}
	return nil
}

// addTransaction creates a new transaction for the caller
func addTransaction(c *gin.Context) {
	userID := currentUserID(c)

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}
	if req.CategoryID != nil && !isValidCategoryID(categoryCatalog, *req.CategoryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	row := db.QueryRow(
		`INSERT INTO transactions (user_id, type, amount, category_id, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+transactionColumns,
		userID, req.Type, req.Amount, req.CategoryID, req.Description, req.Date,
	)
	result, err := scanTransaction(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	enrichCategory(&result, categoryCatalog)

	invalidateUserCache(context.Background(), userID)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction created successfully",
		"transaction": result,
	})
}

// getTransaction retrieves one of the caller's transactions by id
func getTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	transaction, err := fetchTransaction(id, currentUserID(c))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// updatableColumns fixes which fields a partial update may touch and the
// order they appear in the SET clause
var updatableColumns = []string{"type", "amount", "category_id", "description", "date"}

// buildUpdateQuery assembles the parameterized partial UPDATE. updates maps
// column name to new value; only allow-listed columns are consulted.
// updated_at refreshes on every call.
func buildUpdateQuery(id, userID int, updates map[string]any) (string, []any) {
	var set []string
	var args []any

	for _, col := range updatableColumns {
		value, ok := updates[col]
		if !ok {
			continue
		}
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id, userID)
	query := fmt.Sprintf(
		"UPDATE transactions SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(set, ", "), len(args)-1, len(args),
	)
	return query, args
}

// parseTransactionUpdate validates a partial update body. Absent fields are
// left out of the result; an explicit null category_id clears the category.
func parseTransactionUpdate(body map[string]json.RawMessage) (map[string]any, error) {
	updates := make(map[string]any)

	if raw, ok := body["type"]; ok {
		var t string
		if err := json.Unmarshal(raw, &t); err != nil || (t != "income" && t != "expense") {
			return nil, errors.New("type must be income or expense")
		}
		updates["type"] = t
	}
	if raw, ok := body["amount"]; ok {
		var amount decimal.Decimal
		if err := json.Unmarshal(raw, &amount); err != nil || !amount.IsPositive() {
			return nil, errors.New("amount must be greater than zero")
		}
		updates["amount"] = amount
	}
	if raw, ok := body["category_id"]; ok {
		var categoryID *int
		if err := json.Unmarshal(raw, &categoryID); err != nil {
			return nil, errors.New("category_id must be an integer or null")
		}
		if categoryID != nil && !isValidCategoryID(categoryCatalog, *categoryID) {
			return nil, errors.New("invalid category")
		}
		updates["category_id"] = categoryID
	}
	if raw, ok := body["description"]; ok {
		var description *string
		if err := json.Unmarshal(raw, &description); err != nil {
			return nil, errors.New("description must be a string or null")
		}
		if description != nil && len(*description) > 255 {
			return nil, errors.New("description must be at most 255 characters")
		}
		updates["description"] = description
	}
	if raw, ok := body["date"]; ok {
		var date string
		if err := json.Unmarshal(raw, &date); err != nil || !isValidDate(date) {
			return nil, errors.New("date must be a YYYY-MM-DD string")
		}
		updates["date"] = date
	}

	return updates, nil
}

// updateTransaction applies a partial update to one of the caller's
// transactions; unspecified fields are preserved
func updateTransaction(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed"})
		return
	}

	updates, err := parseTransactionUpdate(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	// Existence check first so a wrong owner answers exactly like a
	// missing id.
	if _, err := fetchTransaction(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	query, args := buildUpdateQuery(id, userID, updates)
	if _, err := db.Exec(query, args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	transaction, err := fetchTransaction(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	invalidateUserCache(context.Background(), userID)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully",
		"transaction": transaction,
	})
}

// deleteTransaction removes one of the caller's transactions by id
func deleteTransaction(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	result, err := db.Exec(
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	invalidateUserCache(context.Background(), userID)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
