// Package categories handles the categories command
package categories

import (
	"fjacquet/finance-ledger/cmd/common"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/report"

	"github.com/spf13/cobra"
)

var txType string

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the expense and income categories",
	Args:  cobra.NoArgs,
	RunE:  categoriesFunc,
}

func init() {
	Cmd.Flags().StringVarP(&txType, "type", "t", "", "Only income or expense categories")
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	view := report.Categories()
	if txType != "" {
		t, err := models.ParseTransactionType(txType)
		if err != nil {
			return err
		}
		filtered := report.CategoryView{}
		for _, entry := range view {
			if entry.Type == t {
				filtered = append(filtered, entry)
			}
		}
		view = filtered
	}
	return common.Render(cmd, view)
}
