// Package ledger derives the dashboard views of a book: totals, category
// breakdowns, budget performance and alerts, and month-by-month trends.
//
// Every function is pure: it reads the collections it is given, never
// modifies them, and recomputes from scratch on each call.
package ledger

import (
	"sort"
	"time"

	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTrendWindow is the number of months in the trailing trend
const DefaultTrendWindow = 6

// DefaultAlertThreshold is the share of a budget above which it is flagged
var DefaultAlertThreshold = decimal.NewFromFloat(0.8)

var (
	hundred        = decimal.NewFromInt(100)
	warningPercent = decimal.NewFromInt(80)
)

// Totals holds income and expense sums, both as magnitudes
type Totals struct {
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
}

// Net is income minus expenses
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// MonthTrend is one month of the trend series
type MonthTrend struct {
	Month    string          `json:"month" yaml:"month" csv:"Month"`
	Income   decimal.Decimal `json:"income" yaml:"income" csv:"Income"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses" csv:"Expenses"`
	Net      decimal.Decimal `json:"net" yaml:"net" csv:"Net"`
}

// BudgetUsage compares one budget with what was spent against it
type BudgetUsage struct {
	Category   string          `json:"category" yaml:"category" csv:"Category"`
	Budget     decimal.Decimal `json:"budget" yaml:"budget" csv:"Budget"`
	Spent      decimal.Decimal `json:"spent" yaml:"spent" csv:"Spent"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage" csv:"Percentage"`
	Status     string          `json:"status" yaml:"status" csv:"Status"`
}

// ComputeTotals sums income and expenses over all transactions
func ComputeTotals(transactions []models.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range transactions {
		switch {
		case tx.IsIncome():
			totals.Income = totals.Income.Add(tx.Amount.Abs())
		case tx.IsExpense():
			totals.Expenses = totals.Expenses.Add(tx.Amount.Abs())
		}
	}
	return totals
}

// MonthTotals sums income and expenses of the transactions dated in month
func MonthTotals(transactions []models.Transaction, month string) Totals {
	return ComputeTotals(inMonth(transactions, month))
}

// CategoryBreakdown groups the transactions of one type dated in month by
// category. Categories keep the order in which they first appear in
// transactions. Percentages are shares of the group total, or zero when
// that total is zero.
func CategoryBreakdown(transactions []models.Transaction, month string, txType models.TransactionType) []models.CategorySummary {
	breakdown := make([]models.CategorySummary, 0)
	index := make(map[string]int)

	for _, tx := range transactions {
		if tx.Type != txType || !tx.InMonth(month) {
			continue
		}
		i, seen := index[tx.Category]
		if !seen {
			i = len(breakdown)
			index[tx.Category] = i
			breakdown = append(breakdown, models.CategorySummary{
				Category:   tx.Category,
				Amount:     decimal.Zero,
				Percentage: decimal.Zero,
				Color:      models.CategoryColor(tx.Category),
			})
		}
		breakdown[i].Amount = breakdown[i].Amount.Add(tx.Amount.Abs())
	}

	total := decimal.Zero
	for _, s := range breakdown {
		total = total.Add(s.Amount)
	}
	if total.IsZero() {
		return breakdown
	}
	for i := range breakdown {
		breakdown[i].Percentage = breakdown[i].Amount.Div(total).Mul(hundred)
	}
	return breakdown
}

// BudgetAlerts returns the budgets of month whose spending is strictly above
// amount*threshold. Spending comes from breakdown and is zero for
// categories missing from it.
func BudgetAlerts(budgets []models.Budget, breakdown []models.CategorySummary, month string, threshold decimal.Decimal) []models.Budget {
	spent := spentByCategory(breakdown)
	alerts := make([]models.Budget, 0)
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		if spent[string(b.Category)].GreaterThan(b.Amount.Mul(threshold)) {
			alerts = append(alerts, b)
		}
	}
	return alerts
}

// MonthlyTrend returns window calendar months ending with the month of ref,
// oldest first. Months without transactions are present with zero values.
func MonthlyTrend(transactions []models.Transaction, ref time.Time, window int) []MonthTrend {
	months := dateutils.TrailingMonths(ref, window)
	sums := sumByMonth(transactions)

	trend := make([]MonthTrend, 0, len(months))
	for _, month := range months {
		t, ok := sums[month]
		if !ok {
			t = Totals{Income: decimal.Zero, Expenses: decimal.Zero}
		}
		trend = append(trend, MonthTrend{
			Month:    month,
			Income:   t.Income,
			Expenses: t.Expenses,
			Net:      t.Net(),
		})
	}
	return trend
}

// MonthlyHistory returns one entry per month that has transactions, ascending
func MonthlyHistory(transactions []models.Transaction) []MonthTrend {
	sums := sumByMonth(transactions)
	months := make([]string, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Strings(months)

	history := make([]MonthTrend, 0, len(months))
	for _, month := range months {
		t := sums[month]
		history = append(history, MonthTrend{
			Month:    month,
			Income:   t.Income,
			Expenses: t.Expenses,
			Net:      t.Net(),
		})
	}
	return history
}

// MonthOverMonthChange is the percentage change of total expenses from
// previous to current. It is zero when previous had no expenses, whatever
// current holds.
func MonthOverMonthChange(transactions []models.Transaction, current, previous string) decimal.Decimal {
	cur := MonthTotals(transactions, current).Expenses
	prev := MonthTotals(transactions, previous).Expenses
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred)
}

// BudgetPerformance evaluates every budget of month against breakdown.
// Status is "over" above 100%, "warning" above 80%, "good" otherwise; both
// bounds are exclusive.
func BudgetPerformance(budgets []models.Budget, breakdown []models.CategorySummary, month string) []BudgetUsage {
	spent := spentByCategory(breakdown)
	usage := make([]BudgetUsage, 0)
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		s := spent[string(b.Category)]
		pct := percentOf(s, b.Amount)
		usage = append(usage, BudgetUsage{
			Category:   string(b.Category),
			Budget:     b.Amount,
			Spent:      s,
			Percentage: pct,
			Status:     budgetStatus(pct),
		})
	}
	return usage
}

// UpsertBudget returns a new collection in which b replaces any budget for
// the same category and month. The input slice is left untouched.
func UpsertBudget(budgets []models.Budget, b models.Budget) []models.Budget {
	out := make([]models.Budget, 0, len(budgets)+1)
	for _, existing := range budgets {
		if existing.SameSlot(b) {
			continue
		}
		out = append(out, existing)
	}
	return append(out, b)
}

func budgetStatus(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThan(hundred):
		return models.StatusOver
	case pct.GreaterThan(warningPercent):
		return models.StatusWarning
	default:
		return models.StatusGood
	}
}

// percentOf returns part/whole*100, or zero for a zero whole
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

func spentByCategory(breakdown []models.CategorySummary) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal, len(breakdown))
	for _, s := range breakdown {
		spent[s.Category] = s.Amount
	}
	return spent
}

func sumByMonth(transactions []models.Transaction) map[string]Totals {
	sums := make(map[string]Totals)
	for _, tx := range transactions {
		month := tx.Month()
		t, ok := sums[month]
		if !ok {
			t = Totals{Income: decimal.Zero, Expenses: decimal.Zero}
		}
		switch {
		case tx.IsIncome():
			t.Income = t.Income.Add(tx.Amount.Abs())
		case tx.IsExpense():
			t.Expenses = t.Expenses.Add(tx.Amount.Abs())
		}
		sums[month] = t
	}
	return sums
}

func inMonth(transactions []models.Transaction, month string) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range transactions {
		if tx.InMonth(month) {
			out = append(out, tx)
		}
	}
	return out
}
