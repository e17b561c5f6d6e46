package ledger

import (
	"sort"
	"time"

	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopCategories is how many categories the insights view ranks
const DefaultTopCategories = 5

// DefaultRecentTransactions is how many transactions the dashboard lists
const DefaultRecentTransactions = 5

// BudgetComparison is a budget next to the spending of its own month
type BudgetComparison struct {
	ID         string          `json:"id" yaml:"id" csv:"ID"`
	Category   string          `json:"category" yaml:"category" csv:"Category"`
	Month      string          `json:"month" yaml:"month" csv:"Month"`
	Budget     decimal.Decimal `json:"budget" yaml:"budget" csv:"Budget"`
	Spent      decimal.Decimal `json:"spent" yaml:"spent" csv:"Spent"`
	Remaining  decimal.Decimal `json:"remaining" yaml:"remaining" csv:"Remaining"`
	OverBudget decimal.Decimal `json:"over_budget" yaml:"over_budget" csv:"OverBudget"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage" csv:"Percentage"`
}

// Dashboard is the landing view: all-time totals plus the reference month's
// expense breakdown and the budgets that crossed the alert threshold.
type Dashboard struct {
	Month     string                   `json:"month" yaml:"month"`
	Totals    Totals                   `json:"totals" yaml:"totals"`
	Net       decimal.Decimal          `json:"net" yaml:"net"`
	Breakdown []models.CategorySummary `json:"breakdown" yaml:"breakdown"`
	Alerts    []BudgetUsage            `json:"alerts" yaml:"alerts"`
	Recent    []models.Transaction     `json:"recent" yaml:"recent"`
}

// Insights compares the reference month with the one before it
type Insights struct {
	Month                   string                   `json:"month" yaml:"month"`
	PreviousMonth           string                   `json:"previous_month" yaml:"previous_month"`
	Income                  decimal.Decimal          `json:"income" yaml:"income"`
	Expenses                decimal.Decimal          `json:"expenses" yaml:"expenses"`
	PreviousExpenses        decimal.Decimal          `json:"previous_expenses" yaml:"previous_expenses"`
	ExpenseChange           decimal.Decimal          `json:"expense_change" yaml:"expense_change"`
	NetBalance              decimal.Decimal          `json:"net_balance" yaml:"net_balance"`
	TopCategories           []models.CategorySummary `json:"top_categories" yaml:"top_categories"`
	Budgets                 []BudgetUsage            `json:"budgets" yaml:"budgets"`
	BudgetsNeedingAttention int                      `json:"budgets_needing_attention" yaml:"budgets_needing_attention"`
	Trend                   []MonthTrend             `json:"trend" yaml:"trend"`
}

// InsightOptions tunes BuildInsights; zero values fall back to the defaults
type InsightOptions struct {
	TopCategories int
	TrendWindow   int
}

// TopCategories returns the n largest entries of breakdown, largest first.
// Ties keep their breakdown order.
func TopCategories(breakdown []models.CategorySummary, n int) []models.CategorySummary {
	if n <= 0 {
		return []models.CategorySummary{}
	}
	ranked := make([]models.CategorySummary, len(breakdown))
	copy(ranked, breakdown)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CompareBudgets sets every budget against the expenses of its category in
// its own month, largest budget first.
func CompareBudgets(budgets []models.Budget, transactions []models.Transaction) []BudgetComparison {
	type slot struct{ category, month string }
	spent := make(map[slot]decimal.Decimal)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		k := slot{tx.Category, tx.Month()}
		spent[k] = spent[k].Add(tx.Amount.Abs())
	}

	out := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		s := spent[slot{string(b.Category), b.Month}]
		out = append(out, BudgetComparison{
			ID:         b.ID,
			Category:   string(b.Category),
			Month:      b.Month,
			Budget:     b.Amount,
			Spent:      s,
			Remaining:  decimal.Max(decimal.Zero, b.Amount.Sub(s)),
			OverBudget: decimal.Max(decimal.Zero, s.Sub(b.Amount)),
			Percentage: percentOf(s, b.Amount),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Budget.GreaterThan(out[j].Budget)
	})
	return out
}

// BuildDashboard assembles the landing view for the month containing ref
func BuildDashboard(transactions []models.Transaction, budgets []models.Budget, ref time.Time, threshold decimal.Decimal) Dashboard {
	month := dateutils.MonthKey(ref)
	totals := ComputeTotals(transactions)
	breakdown := CategoryBreakdown(transactions, month, models.TypeExpense)

	alerted := make(map[string]bool)
	for _, b := range BudgetAlerts(budgets, breakdown, month, threshold) {
		alerted[string(b.Category)] = true
	}
	alerts := make([]BudgetUsage, 0, len(alerted))
	for _, u := range BudgetPerformance(budgets, breakdown, month) {
		if alerted[u.Category] {
			alerts = append(alerts, u)
		}
	}

	return Dashboard{
		Month:     month,
		Totals:    totals,
		Net:       totals.Net(),
		Breakdown: breakdown,
		Alerts:    alerts,
		Recent:    Recent(transactions, DefaultRecentTransactions),
	}
}

// BuildInsights compares the month containing ref with the previous month
func BuildInsights(transactions []models.Transaction, budgets []models.Budget, ref time.Time, opts InsightOptions) Insights {
	if opts.TopCategories <= 0 {
		opts.TopCategories = DefaultTopCategories
	}
	if opts.TrendWindow <= 0 {
		opts.TrendWindow = DefaultTrendWindow
	}

	month := dateutils.MonthKey(ref)
	previous := dateutils.PreviousMonthOf(ref)
	current := MonthTotals(transactions, month)
	breakdown := CategoryBreakdown(transactions, month, models.TypeExpense)
	usage := BudgetPerformance(budgets, breakdown, month)

	attention := 0
	for _, u := range usage {
		if u.Status != models.StatusGood {
			attention++
		}
	}

	return Insights{
		Month:                   month,
		PreviousMonth:           previous,
		Income:                  current.Income,
		Expenses:                current.Expenses,
		PreviousExpenses:        MonthTotals(transactions, previous).Expenses,
		ExpenseChange:           MonthOverMonthChange(transactions, month, previous),
		NetBalance:              current.Net(),
		TopCategories:           TopCategories(breakdown, opts.TopCategories),
		Budgets:                 usage,
		BudgetsNeedingAttention: attention,
		Trend:                   MonthlyTrend(transactions, ref, opts.TrendWindow),
	}
}
