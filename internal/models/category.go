package models

import (
	"fmt"
	"strings"
)

// ExpenseCategory is a member of the closed expense vocabulary
type ExpenseCategory string

// IncomeCategory is a member of the closed income vocabulary
type IncomeCategory string

// Expense categories
const (
	FoodAndDining     ExpenseCategory = "Food & Dining"
	Transportation    ExpenseCategory = "Transportation"
	Shopping          ExpenseCategory = "Shopping"
	Entertainment     ExpenseCategory = "Entertainment"
	BillsAndUtilities ExpenseCategory = "Bills & Utilities"
	Healthcare        ExpenseCategory = "Healthcare"
	Education         ExpenseCategory = "Education"
	Travel            ExpenseCategory = "Travel"
	PersonalCare      ExpenseCategory = "Personal Care"
	OtherExpense      ExpenseCategory = "Other"
)

// Income categories
const (
	Salary      IncomeCategory = "Salary"
	Freelance   IncomeCategory = "Freelance"
	Investment  IncomeCategory = "Investment"
	Business    IncomeCategory = "Business"
	Gift        IncomeCategory = "Gift"
	OtherIncome IncomeCategory = "Other"
)

// ExpenseCategories lists the expense vocabulary in display order
var ExpenseCategories = []ExpenseCategory{
	FoodAndDining,
	Transportation,
	Shopping,
	Entertainment,
	BillsAndUtilities,
	Healthcare,
	Education,
	Travel,
	PersonalCare,
	OtherExpense,
}

// IncomeCategories lists the income vocabulary in display order
var IncomeCategories = []IncomeCategory{
	Salary,
	Freelance,
	Investment,
	Business,
	Gift,
	OtherIncome,
}

// DefaultCategoryColor is used for names missing from the palette
const DefaultCategoryColor = "#6b7280"

var categoryColors = map[string]string{
	string(FoodAndDining):     "#ef4444",
	string(Transportation):    "#f97316",
	string(Shopping):          "#eab308",
	string(Entertainment):     "#22c55e",
	string(BillsAndUtilities): "#06b6d4",
	string(Healthcare):        "#3b82f6",
	string(Education):         "#8b5cf6",
	string(Travel):            "#ec4899",
	string(PersonalCare):      "#f59e0b",
	string(OtherExpense):      "#6b7280",
	string(Salary):            "#10b981",
	string(Freelance):         "#059669",
	string(Investment):        "#0d9488",
	string(Business):          "#0891b2",
	string(Gift):              "#7c3aed",
}

// CategoryColor returns the chart color for a category
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultCategoryColor
}

// IsValid reports whether c belongs to the expense vocabulary
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsValid reports whether c belongs to the income vocabulary
func (c IncomeCategory) IsValid() bool {
	for _, known := range IncomeCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoriesFor returns the vocabulary matching a transaction type
func CategoriesFor(t TransactionType) []string {
	switch t {
	case TypeExpense:
		out := make([]string, len(ExpenseCategories))
		for i, c := range ExpenseCategories {
			out[i] = string(c)
		}
		return out
	case TypeIncome:
		out := make([]string, len(IncomeCategories))
		for i, c := range IncomeCategories {
			out[i] = string(c)
		}
		return out
	default:
		return nil
	}
}

// IsValidCategory reports whether category belongs to the vocabulary of t
func IsValidCategory(t TransactionType, category string) bool {
	switch t {
	case TypeExpense:
		return ExpenseCategory(category).IsValid()
	case TypeIncome:
		return IncomeCategory(category).IsValid()
	default:
		return false
	}
}

// ParseTransactionType accepts "income"/"expense" in any case
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type %q: must be %q or %q", s, TypeIncome, TypeExpense)
	}
	return t, nil
}

// ParseExpenseCategory resolves a category name case-insensitively
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	for _, c := range ExpenseCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category %q", s)
}

// CanonicalCategory returns the vocabulary spelling of category for type t,
// matching case-insensitively. ok is false when it is not in the vocabulary.
func CanonicalCategory(t TransactionType, category string) (string, bool) {
	for _, c := range CategoriesFor(t) {
		if strings.EqualFold(c, strings.TrimSpace(category)) {
			return c, true
		}
	}
	return category, false
}
