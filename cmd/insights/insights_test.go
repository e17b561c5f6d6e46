package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/config"
	"fjacquet/finance-ledger/internal/container"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	cfg := &config.Config{
		Log:      config.LogConfig{Level: "info", Format: "text"},
		Data:     config.DataConfig{Backend: config.BackendMemory},
		Insights: config.InsightsConfig{AlertThreshold: 0.8, TrendMonths: 4, TopCategories: 2},
		Report:   config.ReportConfig{Format: "json"},
		CSV:      config.CSVConfig{Delimiter: ","},
	}
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	root.Flags.Month = "2024-03"
	t.Cleanup(func() {
		root.Flags.Month = ""
		root.Teardown()
	})

	ctx := context.Background()
	expense := func(date, category string, amount int64) models.Transaction {
		return models.Transaction{Date: date, Type: models.TypeExpense, Category: category, Description: category, Amount: decimal.NewFromInt(amount)}
	}
	for _, tx := range []models.Transaction{
		expense("2024-02-10", "Food & Dining", 200),
		expense("2024-03-02", "Food & Dining", 150),
		expense("2024-03-03", "Travel", 100),
		expense("2024-03-04", "Shopping", 50),
		expense("2023-10-04", "Shopping", 10),
		{Date: "2024-03-01", Type: models.TypeIncome, Category: "Salary", Description: "Pay", Amount: decimal.NewFromInt(1000)},
	} {
		_, err := c.GetBook().AddTransaction(ctx, tx)
		require.NoError(t, err)
	}
	_, err = c.GetBook().SetBudget(ctx, models.Budget{Category: models.Travel, Amount: decimal.NewFromInt(90), Month: "2024-03"})
	require.NoError(t, err)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) []byte {
	t.Helper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.Bytes()
}

func TestInsights(t *testing.T) {
	setup(t)

	var in map[string]interface{}
	require.NoError(t, json.Unmarshal(execute(t, Cmd), &in))
	assert.Equal(t, "2024-03", in["month"])
	assert.Equal(t, "2024-02", in["previous_month"])
	assert.Equal(t, "300", in["expenses"])
	assert.Equal(t, "200", in["previous_expenses"])
	assert.Equal(t, "50", in["expense_change"])
	assert.Len(t, in["top_categories"], 2)
	assert.Len(t, in["trend"], 4)
	assert.EqualValues(t, 1, in["budgets_needing_attention"])
}

func TestTrend(t *testing.T) {
	setup(t)

	var trend []map[string]string
	require.NoError(t, json.Unmarshal(execute(t, TrendCmd), &trend))
	require.Len(t, trend, 4)
	assert.Equal(t, "2023-12", trend[0]["month"])
	assert.Equal(t, "0", trend[0]["expenses"])
	assert.Equal(t, "700", trend[3]["net"])

	require.NoError(t, json.Unmarshal(execute(t, TrendCmd, "--months", "2"), &trend))
	assert.Len(t, trend, 2)

	require.NoError(t, json.Unmarshal(execute(t, TrendCmd, "--all"), &trend))
	require.Len(t, trend, 3)
	assert.Equal(t, "2023-10", trend[0]["month"])
}
