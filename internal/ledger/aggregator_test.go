package ledger

import (
	"testing"
	"time"

	"fjacquet/finance-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func expense(id, date, category, amount string) models.Transaction {
	return models.Transaction{
		ID:          id,
		Amount:      dec(amount),
		Date:        date,
		Description: category + " " + id,
		Type:        models.TypeExpense,
		Category:    category,
	}
}

func income(id, date, category, amount string) models.Transaction {
	tx := expense(id, date, category, amount)
	tx.Type = models.TypeIncome
	return tx
}

func budget(id string, category models.ExpenseCategory, amount, month string) models.Budget {
	return models.Budget{ID: id, Category: category, Amount: dec(amount), Month: month}
}

func TestComputeTotals(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-01-05", "Food & Dining", "50"),
		income("2", "2024-01-01", "Salary", "2000"),
	}

	totals := ComputeTotals(txs)
	assertDecimal(t, "2000", totals.Income)
	assertDecimal(t, "50", totals.Expenses)
	assertDecimal(t, "1950", totals.Net())
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expenses.IsZero())
	assert.True(t, totals.Net().IsZero())
}

func TestComputeTotals_UsesMagnitude(t *testing.T) {
	// records built outside the builder may still carry a sign
	txs := []models.Transaction{
		expense("1", "2024-01-05", "Shopping", "-30"),
		income("2", "2024-01-06", "Gift", "-20"),
	}
	totals := ComputeTotals(txs)
	assertDecimal(t, "20", totals.Income)
	assertDecimal(t, "30", totals.Expenses)
}

func TestComputeTotals_NetEqualsSignedSum(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-01-05", "Food & Dining", "12.34"),
		income("2", "2024-01-01", "Salary", "2500"),
		expense("3", "2024-02-01", "Travel", "999.99"),
		income("4", "2024-02-11", "Freelance", "310.5"),
		expense("5", "2024-03-01", "Healthcare", "0.01"),
	}

	signed := decimal.Zero
	for _, tx := range txs {
		signed = signed.Add(tx.SignedAmount())
	}
	assert.True(t, ComputeTotals(txs).Net().Equal(signed))
}

func TestMonthTotals(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-01-05", "Food & Dining", "50"),
		expense("2", "2024-02-05", "Food & Dining", "70"),
		income("3", "2024-02-01", "Salary", "1000"),
	}
	feb := MonthTotals(txs, "2024-02")
	assertDecimal(t, "1000", feb.Income)
	assertDecimal(t, "70", feb.Expenses)
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-01-05", "Transportation", "25"),
		expense("2", "2024-01-07", "Food & Dining", "50"),
		income("3", "2024-01-01", "Salary", "2000"),
		expense("4", "2024-01-20", "Transportation", "25"),
		expense("5", "2024-02-01", "Shopping", "400"),
	}

	breakdown := CategoryBreakdown(txs, "2024-01", models.TypeExpense)
	require.Len(t, breakdown, 2)

	// first-seen order
	assert.Equal(t, "Transportation", breakdown[0].Category)
	assertDecimal(t, "50", breakdown[0].Amount)
	assertDecimal(t, "50", breakdown[0].Percentage)
	assert.Equal(t, "#f97316", breakdown[0].Color)

	assert.Equal(t, "Food & Dining", breakdown[1].Category)
	assertDecimal(t, "50", breakdown[1].Amount)
	assertDecimal(t, "50", breakdown[1].Percentage)
}

func TestCategoryBreakdown_IncomeType(t *testing.T) {
	txs := []models.Transaction{
		income("1", "2024-01-01", "Salary", "3000"),
		income("2", "2024-01-15", "Freelance", "1000"),
		expense("3", "2024-01-20", "Travel", "500"),
	}
	breakdown := CategoryBreakdown(txs, "2024-01", models.TypeIncome)
	require.Len(t, breakdown, 2)
	assertDecimal(t, "75", breakdown[0].Percentage)
	assertDecimal(t, "25", breakdown[1].Percentage)
}

func TestCategoryBreakdown_PercentagesSumTo100(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-03-01", "Food & Dining", "10"),
		expense("2", "2024-03-02", "Shopping", "10"),
		expense("3", "2024-03-03", "Travel", "10"),
		expense("4", "2024-03-04", "Education", "3.33"),
	}
	breakdown := CategoryBreakdown(txs, "2024-03", models.TypeExpense)
	require.Len(t, breakdown, 4)

	sum := decimal.Zero
	for _, s := range breakdown {
		sum = sum.Add(s.Percentage)
	}
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThan(dec("0.000001")), "sum was %s", sum)
}

func TestCategoryBreakdown_ZeroTotal(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-03-01", "Food & Dining", "0"),
		expense("2", "2024-03-02", "Shopping", "0"),
	}
	breakdown := CategoryBreakdown(txs, "2024-03", models.TypeExpense)
	require.Len(t, breakdown, 2)
	for _, s := range breakdown {
		assert.True(t, s.Percentage.IsZero())
	}
}

func TestCategoryBreakdown_NoMatches(t *testing.T) {
	breakdown := CategoryBreakdown(nil, "2024-03", models.TypeExpense)
	assert.NotNil(t, breakdown)
	assert.Empty(t, breakdown)
}

func TestBudgetAlerts(t *testing.T) {
	budgets := []models.Budget{budget("b1", models.FoodAndDining, "100", "2024-01")}

	tests := []struct {
		name    string
		spent   string
		alerted bool
	}{
		{"above threshold", "85", true},
		{"exactly at threshold", "80", false},
		{"just above threshold", "80.01", true},
		{"well below", "10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := []models.CategorySummary{{Category: "Food & Dining", Amount: dec(tt.spent)}}
			alerts := BudgetAlerts(budgets, breakdown, "2024-01", DefaultAlertThreshold)
			if tt.alerted {
				require.Len(t, alerts, 1)
				assert.Equal(t, "b1", alerts[0].ID)
			} else {
				assert.Empty(t, alerts)
			}
		})
	}
}

func TestBudgetAlerts_OtherMonthsAndMissingSpend(t *testing.T) {
	budgets := []models.Budget{
		budget("b1", models.FoodAndDining, "100", "2023-12"),
		budget("b2", models.Travel, "100", "2024-01"),
	}
	breakdown := []models.CategorySummary{{Category: "Food & Dining", Amount: dec("500")}}

	alerts := BudgetAlerts(budgets, breakdown, "2024-01", DefaultAlertThreshold)
	assert.Empty(t, alerts)
}

func TestBudgetAlerts_CustomThreshold(t *testing.T) {
	budgets := []models.Budget{budget("b1", models.Shopping, "200", "2024-01")}
	breakdown := []models.CategorySummary{{Category: "Shopping", Amount: dec("101")}}

	assert.Len(t, BudgetAlerts(budgets, breakdown, "2024-01", dec("0.5")), 1)
	assert.Empty(t, BudgetAlerts(budgets, breakdown, "2024-01", dec("0.9")))
}

func TestMonthlyTrend(t *testing.T) {
	txs := []models.Transaction{
		income("1", "2024-01-01", "Salary", "2000"),
		expense("2", "2024-01-05", "Food & Dining", "50"),
		expense("3", "2024-03-10", "Travel", "300"),
		expense("4", "2023-06-10", "Travel", "999"), // outside the window
	}
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	trend := MonthlyTrend(txs, ref, 6)
	require.Len(t, trend, 6)

	months := make([]string, len(trend))
	for i, m := range trend {
		months[i] = m.Month
	}
	assert.Equal(t, []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}, months)

	assertDecimal(t, "0", trend[0].Income)
	assertDecimal(t, "0", trend[0].Expenses)
	assertDecimal(t, "2000", trend[3].Income)
	assertDecimal(t, "50", trend[3].Expenses)
	assertDecimal(t, "1950", trend[3].Net)
	assertDecimal(t, "0", trend[4].Net)
	assertDecimal(t, "-300", trend[5].Net)
}

func TestMonthlyTrend_EmptyData(t *testing.T) {
	ref := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	trend := MonthlyTrend(nil, ref, DefaultTrendWindow)
	require.Len(t, trend, DefaultTrendWindow)
	assert.Equal(t, "2023-08", trend[0].Month)
	assert.Equal(t, "2024-01", trend[5].Month)
	for _, m := range trend {
		assert.True(t, m.Net.IsZero())
	}

	assert.Empty(t, MonthlyTrend(nil, ref, 0))
}

func TestMonthlyHistory(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2024-03-10", "Travel", "300"),
		income("2", "2024-01-01", "Salary", "2000"),
		expense("3", "2024-01-05", "Food & Dining", "50"),
	}
	history := MonthlyHistory(txs)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-01", history[0].Month)
	assertDecimal(t, "1950", history[0].Net)
	assert.Equal(t, "2024-03", history[1].Month)
	assertDecimal(t, "300", history[1].Expenses)
}

func TestMonthOverMonthChange(t *testing.T) {
	tests := []struct {
		name     string
		txs      []models.Transaction
		expected string
	}{
		{
			name: "increase",
			txs: []models.Transaction{
				expense("1", "2024-01-05", "Shopping", "200"),
				expense("2", "2024-02-05", "Shopping", "300"),
			},
			expected: "50",
		},
		{
			name: "decrease",
			txs: []models.Transaction{
				expense("1", "2024-01-05", "Shopping", "400"),
				expense("2", "2024-02-05", "Shopping", "100"),
			},
			expected: "-75",
		},
		{
			name: "no previous spending yields zero",
			txs: []models.Transaction{
				expense("2", "2024-02-05", "Shopping", "500"),
			},
			expected: "0",
		},
		{
			name: "income is ignored",
			txs: []models.Transaction{
				expense("1", "2024-01-05", "Shopping", "100"),
				income("2", "2024-02-01", "Salary", "5000"),
				expense("3", "2024-02-05", "Shopping", "100"),
			},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, MonthOverMonthChange(tt.txs, "2024-02", "2024-01"))
		})
	}
}

func TestBudgetPerformance_StatusBoundaries(t *testing.T) {
	budgets := []models.Budget{budget("b1", models.FoodAndDining, "100", "2024-01")}

	tests := []struct {
		spent  string
		status string
	}{
		{"0", models.StatusGood},
		{"80", models.StatusGood},
		{"80.0001", models.StatusWarning},
		{"100", models.StatusWarning},
		{"100.0001", models.StatusOver},
		{"250", models.StatusOver},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			breakdown := []models.CategorySummary{{Category: "Food & Dining", Amount: dec(tt.spent)}}
			usage := BudgetPerformance(budgets, breakdown, "2024-01")
			require.Len(t, usage, 1)
			assert.Equal(t, tt.status, usage[0].Status)
		})
	}
}

func TestBudgetPerformance_Fields(t *testing.T) {
	budgets := []models.Budget{
		budget("b1", models.FoodAndDining, "200", "2024-01"),
		budget("b2", models.Travel, "500", "2024-01"),
		budget("b3", models.Travel, "500", "2024-02"),
	}
	breakdown := []models.CategorySummary{{Category: "Food & Dining", Amount: dec("150")}}

	usage := BudgetPerformance(budgets, breakdown, "2024-01")
	require.Len(t, usage, 2)

	assert.Equal(t, "Food & Dining", usage[0].Category)
	assertDecimal(t, "200", usage[0].Budget)
	assertDecimal(t, "150", usage[0].Spent)
	assertDecimal(t, "75", usage[0].Percentage)
	assert.Equal(t, models.StatusGood, usage[0].Status)

	assert.Equal(t, "Travel", usage[1].Category)
	assertDecimal(t, "0", usage[1].Spent)
	assertDecimal(t, "0", usage[1].Percentage)
}

func TestUpsertBudget(t *testing.T) {
	original := []models.Budget{
		budget("b1", models.FoodAndDining, "100", "2024-01"),
		budget("b2", models.Travel, "300", "2024-01"),
	}

	first := UpsertBudget(original, budget("b3", models.FoodAndDining, "150", "2024-01"))
	second := UpsertBudget(first, budget("b4", models.FoodAndDining, "175", "2024-01"))

	require.Len(t, second, 2)
	assert.Equal(t, "b2", second[0].ID)
	assert.Equal(t, "b4", second[1].ID)
	assertDecimal(t, "175", second[1].Amount)

	// input untouched
	require.Len(t, original, 2)
	assert.Equal(t, "b1", original[0].ID)
}

func TestUpsertBudget_DifferentMonthAppends(t *testing.T) {
	original := []models.Budget{budget("b1", models.FoodAndDining, "100", "2024-01")}
	out := UpsertBudget(original, budget("b2", models.FoodAndDining, "100", "2024-02"))
	assert.Len(t, out, 2)

	out = UpsertBudget(nil, budget("b3", models.Travel, "10", "2024-02"))
	assert.Len(t, out, 1)
}
