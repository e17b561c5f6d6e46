// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"time"

	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/book"
	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// now is replaced in tests
var now = time.Now

// Render writes view to the command output in the configured format
func Render(cmd *cobra.Command, view interface{}) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return c.GetReportGenerator().Render(cmd.OutOrStdout(), view, c.GetConfig().Report.Format)
}

// Book returns the application book
func Book() (*book.Book, error) {
	c, err := root.GetContainer()
	if err != nil {
		return nil, err
	}
	return c.GetBook(), nil
}

// ReferenceTime returns the first day of the --month flag, or the current
// time when the flag is unset
func ReferenceTime() (time.Time, error) {
	if root.Flags.Month == "" {
		return now(), nil
	}
	t, err := dateutils.ParseMonth(root.Flags.Month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q: %w", root.Flags.Month, err)
	}
	return t, nil
}

// AlertThreshold returns the configured budget alert threshold
func AlertThreshold() decimal.Decimal {
	c, err := root.GetContainer()
	if err != nil {
		return ledger.DefaultAlertThreshold
	}
	return decimal.NewFromFloat(c.GetConfig().Insights.AlertThreshold)
}
