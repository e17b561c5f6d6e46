package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/finance-ledger/internal/common"
	"fjacquet/finance-ledger/internal/ledger"

	"github.com/gocarina/gocsv"
)

type breakdownRow struct {
	Category   string `csv:"Category"`
	Amount     string `csv:"Amount"`
	Percentage string `csv:"Percentage"`
	Color      string `csv:"Color"`
}

type trendRow struct {
	Month    string `csv:"Month"`
	Income   string `csv:"Income"`
	Expenses string `csv:"Expenses"`
	Net      string `csv:"Net"`
}

type budgetRow struct {
	ID         string `csv:"ID"`
	Category   string `csv:"Category"`
	Month      string `csv:"Month"`
	Budget     string `csv:"Budget"`
	Spent      string `csv:"Spent"`
	Remaining  string `csv:"Remaining"`
	OverBudget string `csv:"OverBudget"`
	Percentage string `csv:"Percentage"`
}

type usageRow struct {
	Category   string `csv:"Category"`
	Budget     string `csv:"Budget"`
	Spent      string `csv:"Spent"`
	Percentage string `csv:"Percentage"`
	Status     string `csv:"Status"`
}

// renderCSV writes the tabular part of a view. The dashboard exports its
// category breakdown and insights export their budget performance.
func (g *Generator) renderCSV(w io.Writer, view interface{}) error {
	var rows interface{}
	switch v := view.(type) {
	case ledger.Dashboard:
		rows = breakdownRows(v)
	case *ledger.Dashboard:
		rows = breakdownRows(*v)
	case ledger.Insights:
		rows = usageRows(v.Budgets)
	case *ledger.Insights:
		rows = usageRows(v.Budgets)
	case TrendView:
		out := make([]trendRow, 0, len(v))
		for _, m := range v {
			out = append(out, trendRow{m.Month, m.Income.StringFixed(2), m.Expenses.StringFixed(2), m.Net.StringFixed(2)})
		}
		rows = out
	case BudgetView:
		out := make([]budgetRow, 0, len(v))
		for _, b := range v {
			out = append(out, budgetRow{
				ID: b.ID, Category: b.Category, Month: b.Month,
				Budget: b.Budget.StringFixed(2), Spent: b.Spent.StringFixed(2),
				Remaining: b.Remaining.StringFixed(2), OverBudget: b.OverBudget.StringFixed(2),
				Percentage: b.Percentage.StringFixed(1),
			})
		}
		rows = out
	case TransactionView:
		out := make([]common.TransactionRow, 0, len(v))
		for _, tx := range v {
			out = append(out, common.NewTransactionRow(tx))
		}
		rows = out
	case CategoryView:
		rows = []CategoryEntry(v)
	default:
		return fmt.Errorf("no CSV layout for %T", view)
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func breakdownRows(d ledger.Dashboard) []breakdownRow {
	out := make([]breakdownRow, 0, len(d.Breakdown))
	for _, s := range d.Breakdown {
		out = append(out, breakdownRow{s.Category, s.Amount.StringFixed(2), s.Percentage.StringFixed(1), s.Color})
	}
	return out
}

func usageRows(usage []ledger.BudgetUsage) []usageRow {
	out := make([]usageRow, 0, len(usage))
	for _, u := range usage {
		out = append(out, usageRow{u.Category, u.Budget.StringFixed(2), u.Spent.StringFixed(2), u.Percentage.StringFixed(1), u.Status})
	}
	return out
}
