// Package budget handles the monthly budget commands
package budget

import (
	"fmt"

	"fjacquet/finance-ledger/cmd/common"
	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/ledger"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/report"

	"github.com/spf13/cobra"
)

type budgetFlags struct {
	Category string
	Amount   string
	Month    string
}

var (
	setFlags  budgetFlags
	editFlags budgetFlags
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:     "budget",
	Aliases: []string{"budgets"},
	Short:   "Set and review monthly spending budgets",
	Long: `Manage monthly spending ceilings per expense category.

Each category has at most one budget per month; setting a budget for a
category and month that already has one replaces it.

Example:
  finance-ledger budget set -c "Food & Dining" -a 400 --for 2024-03
  finance-ledger budget list`,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the budget of a category for a month",
	Args:  cobra.NoArgs,
	RunE:  setFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Compare budgets with what was spent",
	Long: `List budgets next to the expenses of their category in their month,
largest budget first. With --month only that month's budgets are shown.`,
	Args: cobra.NoArgs,
	RunE: listFunc,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the category, amount or month of a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  editFunc,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a budget",
	Args:    cobra.ExactArgs(1),
	RunE:    deleteFunc,
}

func init() {
	for _, bind := range []struct {
		cmd *cobra.Command
		f   *budgetFlags
	}{{setCmd, &setFlags}, {editCmd, &editFlags}} {
		bind.cmd.Flags().StringVarP(&bind.f.Category, "category", "c", "", "Expense category")
		bind.cmd.Flags().StringVarP(&bind.f.Amount, "amount", "a", "", "Monthly ceiling, e.g. 400")
		bind.cmd.Flags().StringVar(&bind.f.Month, "for", "", "Budget month as YYYY-MM (default: the reference month)")
	}
	_ = setCmd.MarkFlagRequired("category")
	_ = setCmd.MarkFlagRequired("amount")

	Cmd.AddCommand(setCmd, listCmd, editCmd, deleteCmd)
}

func setFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}

	amount, err := models.ParseAmount(setFlags.Amount)
	if err != nil {
		return err
	}
	month := setFlags.Month
	if month == "" {
		ref, err := common.ReferenceTime()
		if err != nil {
			return err
		}
		month = dateutils.MonthKey(ref)
	}

	budget, err := models.NewBudget(setFlags.Category, amount, month)
	if err != nil {
		return fmt.Errorf("invalid budget: %w", err)
	}
	saved, err := b.SetBudget(cmd.Context(), budget)
	if err != nil {
		return err
	}
	return common.Render(cmd, report.BudgetView(ledger.CompareBudgets([]models.Budget{saved}, b.Transactions())))
}

func listFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}

	budgets := b.Budgets()
	if root.Flags.Month != "" {
		filtered := make([]models.Budget, 0, len(budgets))
		for _, budget := range budgets {
			if budget.Month == root.Flags.Month {
				filtered = append(filtered, budget)
			}
		}
		budgets = filtered
	}
	return common.Render(cmd, report.BudgetView(ledger.CompareBudgets(budgets, b.Transactions())))
}

func editFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	id, err := b.ResolveBudgetID(args[0])
	if err != nil {
		return err
	}
	next, err := b.Budget(id)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("category") {
		next.Category = models.ExpenseCategory(editFlags.Category)
	}
	if changed("amount") {
		if next.Amount, err = models.ParseAmount(editFlags.Amount); err != nil {
			return err
		}
	}
	if changed("for") {
		next.Month = editFlags.Month
	}

	saved, err := b.UpdateBudget(cmd.Context(), id, next)
	if err != nil {
		return err
	}
	return common.Render(cmd, report.BudgetView(ledger.CompareBudgets([]models.Budget{saved}, b.Transactions())))
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	id, err := b.ResolveBudgetID(args[0])
	if err != nil {
		return err
	}
	if err := b.DeleteBudget(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted budget %s\n", id)
	return nil
}
