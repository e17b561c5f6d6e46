package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/ledger"
	"fjacquet/finance-ledger/internal/models"

	"github.com/shopspring/decimal"
)

func (g *Generator) renderText(w io.Writer, view interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch v := view.(type) {
	case ledger.Dashboard:
		writeDashboard(tw, v)
	case *ledger.Dashboard:
		writeDashboard(tw, *v)
	case ledger.Insights:
		writeInsights(tw, v)
	case *ledger.Insights:
		writeInsights(tw, *v)
	case TrendView:
		writeTrend(tw, v)
	case BudgetView:
		writeBudgets(tw, v)
	case TransactionView:
		writeTransactions(tw, v)
	case CategoryView:
		writeCategories(tw, v)
	default:
		return fmt.Errorf("no text layout for %T", view)
	}
	return tw.Flush()
}

func writeDashboard(w io.Writer, d ledger.Dashboard) {
	fmt.Fprintf(w, "Dashboard for %s\n\n", dateutils.MonthLabel(d.Month))
	fmt.Fprintf(w, "Total income\t%s\n", models.FormatCurrency(d.Totals.Income))
	fmt.Fprintf(w, "Total expenses\t%s\n", models.FormatCurrency(d.Totals.Expenses))
	fmt.Fprintf(w, "Net balance\t%s\n", models.FormatCurrency(d.Net))

	fmt.Fprintf(w, "\nSpending by category\n")
	writeBreakdown(w, d.Breakdown)

	fmt.Fprintf(w, "\nBudget alerts\n")
	if len(d.Alerts) == 0 {
		fmt.Fprintln(w, "No budgets above the alert threshold")
	} else {
		writeUsage(w, d.Alerts)
	}

	fmt.Fprintf(w, "\nRecent transactions\n")
	writeTransactions(w, d.Recent)
}

func writeInsights(w io.Writer, in ledger.Insights) {
	fmt.Fprintf(w, "Insights for %s (compared with %s)\n\n",
		dateutils.MonthLabel(in.Month), dateutils.MonthLabel(in.PreviousMonth))
	fmt.Fprintf(w, "Income this month\t%s\n", models.FormatCurrency(in.Income))
	fmt.Fprintf(w, "Expenses this month\t%s\n", models.FormatCurrency(in.Expenses))
	fmt.Fprintf(w, "Expenses last month\t%s\n", models.FormatCurrency(in.PreviousExpenses))
	fmt.Fprintf(w, "Expense change\t%s\n", signedPercent(in.ExpenseChange))
	fmt.Fprintf(w, "Net balance\t%s\n", models.FormatCurrency(in.NetBalance))

	fmt.Fprintf(w, "\nTop categories\n")
	writeBreakdown(w, in.TopCategories)

	fmt.Fprintf(w, "\nBudget performance (%d need attention)\n", in.BudgetsNeedingAttention)
	writeUsage(w, in.Budgets)

	fmt.Fprintf(w, "\nTrend\n")
	writeTrend(w, in.Trend)
}

func writeBreakdown(w io.Writer, breakdown []models.CategorySummary) {
	if len(breakdown) == 0 {
		fmt.Fprintln(w, "No expenses recorded")
		return
	}
	fmt.Fprintln(w, "CATEGORY\tAMOUNT\tSHARE")
	for _, s := range breakdown {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Category, models.FormatCurrency(s.Amount), models.FormatPercent(s.Percentage))
	}
}

func writeUsage(w io.Writer, usage []ledger.BudgetUsage) {
	if len(usage) == 0 {
		fmt.Fprintln(w, "No budgets set")
		return
	}
	fmt.Fprintln(w, "CATEGORY\tSPENT\tBUDGET\tUSED\tSTATUS")
	for _, u := range usage {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.Category,
			models.FormatCurrency(u.Spent), models.FormatCurrency(u.Budget),
			models.FormatPercent(u.Percentage), u.Status)
	}
}

func writeTrend(w io.Writer, trend []ledger.MonthTrend) {
	fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tNET")
	for _, m := range trend {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dateutils.MonthLabel(m.Month),
			models.FormatCurrency(m.Income), models.FormatCurrency(m.Expenses), models.FormatCurrency(m.Net))
	}
}

func writeBudgets(w io.Writer, budgets []ledger.BudgetComparison) {
	if len(budgets) == 0 {
		fmt.Fprintln(w, "No budgets set")
		return
	}
	fmt.Fprintln(w, "ID\tCATEGORY\tMONTH\tBUDGET\tSPENT\tREMAINING\tOVER\tUSED")
	for _, b := range budgets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", shortID(b.ID), b.Category, b.Month,
			models.FormatCurrency(b.Budget), models.FormatCurrency(b.Spent),
			models.FormatCurrency(b.Remaining), models.FormatCurrency(b.OverBudget),
			models.FormatPercent(b.Percentage))
	}
}

func writeTransactions(w io.Writer, txs []models.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions")
		return
	}
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", shortID(tx.ID), tx.Date, tx.Type, tx.Category,
			models.FormatCurrency(tx.SignedAmount()), tx.Description)
	}
}

func writeCategories(w io.Writer, categories []CategoryEntry) {
	fmt.Fprintln(w, "TYPE\tCATEGORY\tCOLOR")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Type, c.Name, c.Color)
	}
}

// shortID keeps tables narrow; commands accept any unique id prefix
func shortID(id string) string {
	if len(id) > 8 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}

func signedPercent(p decimal.Decimal) string {
	if p.IsPositive() {
		return "+" + models.FormatPercent(p)
	}
	return models.FormatPercent(p)
}
