// Package dashboard handles the dashboard command
package dashboard

import (
	"fjacquet/finance-ledger/cmd/common"
	"fjacquet/finance-ledger/internal/ledger"

	"github.com/spf13/cobra"
)

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show totals, spending by category and budget alerts",
	Long: `Show all-time income, expenses and net balance, the expense breakdown of
the reference month, the budgets above the alert threshold and the latest
transactions.`,
	Args: cobra.NoArgs,
	RunE: dashboardFunc,
}

func dashboardFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	ref, err := common.ReferenceTime()
	if err != nil {
		return err
	}
	d := ledger.BuildDashboard(b.Transactions(), b.Budgets(), ref, common.AlertThreshold())
	return common.Render(cmd, d)
}
