package main

import (
	"fmt"
	"os"

	"fjacquet/finance-ledger/cmd/budget"
	"fjacquet/finance-ledger/cmd/categories"
	"fjacquet/finance-ledger/cmd/configcmd"
	"fjacquet/finance-ledger/cmd/dashboard"
	"fjacquet/finance-ledger/cmd/insights"
	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/cmd/transfer"
	"fjacquet/finance-ledger/cmd/tx"
)

func init() {
	// 1. Register the persistent flags
	root.Init()

	// 2. Add all subcommands
	root.Cmd.AddCommand(tx.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(insights.TrendCmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(transfer.ImportCmd)
	root.Cmd.AddCommand(transfer.ExportCmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
