// Package report renders ledger views as text tables, JSON, YAML or CSV.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/finance-ledger/internal/ledger"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/validation"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// TrendView is a month-by-month series
type TrendView []ledger.MonthTrend

// BudgetView is the budget comparison table
type BudgetView []ledger.BudgetComparison

// TransactionView is a transaction listing
type TransactionView []models.Transaction

// CategoryEntry is one row of the category listing
type CategoryEntry struct {
	Type  models.TransactionType `json:"type" yaml:"type" csv:"Type"`
	Name  string                 `json:"name" yaml:"name" csv:"Name"`
	Color string                 `json:"color" yaml:"color" csv:"Color"`
}

// CategoryView lists both vocabularies
type CategoryView []CategoryEntry

// Categories builds the category listing, expense vocabulary first
func Categories() CategoryView {
	view := CategoryView{}
	for _, t := range []models.TransactionType{models.TypeExpense, models.TypeIncome} {
		for _, name := range models.CategoriesFor(t) {
			view = append(view, CategoryEntry{Type: t, Name: name, Color: models.CategoryColor(name)})
		}
	}
	return view
}

// Generator renders views in the supported formats
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator writing CSV with delimiter
func NewGenerator(logger logging.Logger, delimiter rune) *Generator {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Generator{logger: logger, delimiter: delimiter}
}

// Render writes view to w in format. view is one of ledger.Dashboard,
// ledger.Insights, TrendView, BudgetView, TransactionView or CategoryView.
func (g *Generator) Render(w io.Writer, view interface{}, format string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	g.logger.Debug("Rendering report",
		logging.F(logging.FieldFormat, format),
		logging.F("view", fmt.Sprintf("%T", view)))

	var err error
	switch format {
	case FormatJSON:
		err = g.renderJSON(w, view)
	case FormatYAML:
		err = g.renderYAML(w, view)
	case FormatCSV:
		err = g.renderCSV(w, view)
	default:
		err = g.renderText(w, view)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to render report", logging.F(logging.FieldFormat, format))
		return err
	}
	return nil
}

func (g *Generator) renderJSON(w io.Writer, view interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}

func (g *Generator) renderYAML(w io.Writer, view interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return nil
}
