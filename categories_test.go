package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesByType(t *testing.T) {
	income := categoriesByType(categoryCatalog, "income")
	expense := categoriesByType(categoryCatalog, "expense")
	all := categoriesByType(categoryCatalog, "")

	assert.Len(t, income, 7)
	assert.Len(t, expense, 14)
	assert.Len(t, all, len(categoryCatalog))

	for _, c := range income {
		assert.Equal(t, "income", c.Type)
	}
	for _, c := range expense {
		assert.Equal(t, "expense", c.Type)
	}

	// Catalog order is preserved
	assert.Equal(t, "Salary", income[0].Name)
	assert.Equal(t, "Food & Dining", expense[0].Name)
}

func TestCategoriesByTypeReturnsCopy(t *testing.T) {
	all := categoriesByType(categoryCatalog, "")
	all[0].Name = "mutated"
	assert.Equal(t, "Salary", categoryCatalog[0].Name)
}

func TestCategoryByID(t *testing.T) {
	category, ok := categoryByID(categoryCatalog, 8)
	require.True(t, ok)
	assert.Equal(t, "Food & Dining", category.Name)
	assert.Equal(t, "expense", category.Type)

	_, ok = categoryByID(categoryCatalog, 0)
	assert.False(t, ok)
	_, ok = categoryByID(categoryCatalog, 22)
	assert.False(t, ok)
	_, ok = categoryByID(categoryCatalog, -1)
	assert.False(t, ok)
}

func TestIsValidCategoryID(t *testing.T) {
	for _, c := range categoryCatalog {
		assert.True(t, isValidCategoryID(categoryCatalog, c.ID))
	}
	assert.False(t, isValidCategoryID(categoryCatalog, 999))
}
