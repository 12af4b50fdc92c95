package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// categoryCatalog is the fixed, process-wide list of categories. It is never
// mutated after startup; handlers and the aggregation engine take it as a
// dependency so tests can substitute their own list.
var categoryCatalog = []Category{
	{ID: 1, Name: "Salary", Type: "income"},
	{ID: 2, Name: "Freelance", Type: "income"},
	{ID: 3, Name: "Investment", Type: "income"},
	{ID: 4, Name: "Bonus", Type: "income"},
	{ID: 5, Name: "Rental Income", Type: "income"},
	{ID: 6, Name: "Business Income", Type: "income"},
	{ID: 7, Name: "Other Income", Type: "income"},
	{ID: 8, Name: "Food & Dining", Type: "expense"},
	{ID: 9, Name: "Transportation", Type: "expense"},
	{ID: 10, Name: "Shopping", Type: "expense"},
	{ID: 11, Name: "Entertainment", Type: "expense"},
	{ID: 12, Name: "Bills & Utilities", Type: "expense"},
	{ID: 13, Name: "Healthcare", Type: "expense"},
	{ID: 14, Name: "Education", Type: "expense"},
	{ID: 15, Name: "Travel", Type: "expense"},
	{ID: 16, Name: "Insurance", Type: "expense"},
	{ID: 17, Name: "Home & Garden", Type: "expense"},
	{ID: 18, Name: "Gifts & Donations", Type: "expense"},
	{ID: 19, Name: "Personal Care", Type: "expense"},
	{ID: 20, Name: "Subscriptions", Type: "expense"},
	{ID: 21, Name: "Other Expense", Type: "expense"},
}

// categoriesByType returns catalog entries of the given type, or the whole
// catalog when type is empty. Order follows the catalog.
func categoriesByType(catalog []Category, categoryType string) []Category {
	if categoryType == "" {
		out := make([]Category, len(catalog))
		copy(out, catalog)
		return out
	}
	out := make([]Category, 0)
	for _, c := range catalog {
		if c.Type == categoryType {
			out = append(out, c)
		}
	}
	return out
}

// categoryByID looks up a catalog entry; ok is false when the id is unknown
func categoryByID(catalog []Category, id int) (Category, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func isValidCategoryID(catalog []Category, id int) bool {
	_, ok := categoryByID(catalog, id)
	return ok
}

// getCategories retrieves the catalog, grouped by type unless filtered
func getCategories(c *gin.Context) {
	categoryType := c.Query("type")
	if categoryType != "" && categoryType != "income" && categoryType != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category type"})
		return
	}

	categories := categoriesByType(categoryCatalog, categoryType)

	if categoryType == "" {
		c.JSON(http.StatusOK, gin.H{
			"categories": gin.H{
				"income":  categoriesByType(categoryCatalog, "income"),
				"expense": categoriesByType(categoryCatalog, "expense"),
			},
			"total": len(categories),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// getCategory retrieves a single catalog entry by id
func getCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	category, ok := categoryByID(categoryCatalog, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}
