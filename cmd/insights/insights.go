// Package insights handles the insights and trend commands
package insights

import (
	"fjacquet/finance-ledger/cmd/common"
	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/ledger"
	"fjacquet/finance-ledger/internal/report"

	"github.com/spf13/cobra"
)

var (
	months  int
	history bool
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Compare the reference month with the month before",
	Long: `Compare income and expenses of the reference month with the previous month,
rank the top spending categories, and rate every budget of the month as
good, warning or over.`,
	Args: cobra.NoArgs,
	RunE: insightsFunc,
}

// TrendCmd represents the trend command
var TrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show income, expenses and net per month",
	Long: `Show income, expenses and net for the trailing months ending with the
reference month, oldest first. Months without transactions show zero.

With --all every month that has transactions is listed instead.`,
	Args: cobra.NoArgs,
	RunE: trendFunc,
}

func init() {
	TrendCmd.Flags().IntVar(&months, "months", 0, "Number of months (default: insights.trend_months)")
	TrendCmd.Flags().BoolVar(&history, "all", false, "List every month with data")
}

func options() ledger.InsightOptions {
	c, err := root.GetContainer()
	if err != nil {
		return ledger.InsightOptions{}
	}
	cfg := c.GetConfig().Insights
	return ledger.InsightOptions{TopCategories: cfg.TopCategories, TrendWindow: cfg.TrendMonths}
}

func insightsFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	ref, err := common.ReferenceTime()
	if err != nil {
		return err
	}
	return common.Render(cmd, ledger.BuildInsights(b.Transactions(), b.Budgets(), ref, options()))
}

func trendFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	if history {
		return common.Render(cmd, report.TrendView(ledger.MonthlyHistory(b.Transactions())))
	}

	ref, err := common.ReferenceTime()
	if err != nil {
		return err
	}
	window := months
	if window <= 0 {
		window = options().TrendWindow
	}
	return common.Render(cmd, report.TrendView(ledger.MonthlyTrend(b.Transactions(), ref, window)))
}
