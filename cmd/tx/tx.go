// Package tx handles the transaction commands
package tx

import (
	"fmt"
	"strings"

	"fjacquet/finance-ledger/cmd/common"
	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/ledger"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/report"

	"github.com/spf13/cobra"
)

// entryFlags are shared by add and edit
type entryFlags struct {
	Amount      string
	Date        string
	Description string
	Type        string
	Category    string
}

// listFlags narrow the transaction listing
type listFlags struct {
	Search   string
	Type     string
	Category string
	Limit    int
	ByDate   bool
}

var (
	addFlags  entryFlags
	editFlags entryFlags
	listOpts  listFlags
)

// Cmd represents the tx command
var Cmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction", "transactions"},
	Short:   "Record, list, edit and delete transactions",
	Long: `Manage income and expense transactions.

Amounts are entered as positive numbers; the type decides whether they add to
income or to expenses. Ids may be abbreviated to any unique prefix.

Example:
  finance-ledger tx add -a 42.50 -d "Groceries" -c "Food & Dining"
  finance-ledger tx list --type expense --search coffee -n 10`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new transaction",
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Long: `List transactions in the order they were recorded, newest first.

With --month only transactions dated in that month are shown.`,
	Args: cobra.NoArgs,
	RunE: listFunc,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace fields of an existing transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  editFunc,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    deleteFunc,
}

func init() {
	bindEntryFlags(addCmd, &addFlags, string(models.TypeExpense))
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("description")
	_ = addCmd.MarkFlagRequired("category")

	bindEntryFlags(editCmd, &editFlags, "")

	listCmd.Flags().StringVarP(&listOpts.Search, "search", "s", "", "Match text in description or category")
	listCmd.Flags().StringVarP(&listOpts.Type, "type", "t", "", "Only income or expense")
	listCmd.Flags().StringVarP(&listOpts.Category, "category", "c", "", "Only this category")
	listCmd.Flags().IntVarP(&listOpts.Limit, "limit", "n", 0, "Show at most this many transactions (0 for all)")
	listCmd.Flags().BoolVar(&listOpts.ByDate, "by-date", false, "Sort by transaction date instead of entry order")

	Cmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd)
}

func bindEntryFlags(cmd *cobra.Command, f *entryFlags, defaultType string) {
	cmd.Flags().StringVarP(&f.Amount, "amount", "a", "", "Amount, e.g. 42.50")
	cmd.Flags().StringVar(&f.Date, "date", "", "Date (YYYY-MM-DD, DD.MM.YYYY, ...); defaults to today")
	cmd.Flags().StringVarP(&f.Description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&f.Type, "type", "t", defaultType, "Type: income or expense")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "Category, see the categories command")
}

func addFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}

	txType, err := models.ParseTransactionType(addFlags.Type)
	if err != nil {
		return err
	}
	builder := models.NewTransactionBuilder().
		WithType(txType).
		WithAmountFromString(addFlags.Amount).
		WithDescription(addFlags.Description).
		WithCategory(addFlags.Category)
	if addFlags.Date != "" {
		builder = builder.WithDate(addFlags.Date)
	} else {
		ref, err := common.ReferenceTime()
		if err != nil {
			return err
		}
		builder = builder.WithDateFromTime(ref)
	}

	tx, err := builder.Build()
	if err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	saved, err := b.AddTransaction(cmd.Context(), tx)
	if err != nil {
		return err
	}
	return common.Render(cmd, report.TransactionView{saved})
}

func listFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}

	filter := ledger.TransactionFilter{Search: listOpts.Search, Category: listOpts.Category}
	if listOpts.Type != "" {
		if filter.Type, err = models.ParseTransactionType(listOpts.Type); err != nil {
			return err
		}
	}
	filter.Category = canonicalFilterCategory(filter.Type, filter.Category)

	txs := ledger.Filter(b.Transactions(), filter)
	if root.Flags.Month != "" {
		txs = inMonth(txs, root.Flags.Month)
	}
	if listOpts.ByDate {
		txs = ledger.SortByDateDesc(txs)
	}
	if listOpts.Limit > 0 {
		txs = ledger.Recent(txs, listOpts.Limit)
	}

	root.Log.Debug("Listing transactions", logging.F(logging.FieldCount, len(txs)))
	return common.Render(cmd, report.TransactionView(txs))
}

func editFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	id, err := b.ResolveTransactionID(args[0])
	if err != nil {
		return err
	}
	current, err := b.Transaction(id)
	if err != nil {
		return err
	}

	next, err := applyEdits(cmd, current, editFlags)
	if err != nil {
		return err
	}
	saved, err := b.UpdateTransaction(cmd.Context(), id, next)
	if err != nil {
		return err
	}
	return common.Render(cmd, report.TransactionView{saved})
}

// applyEdits returns current with every flag the user set replaced
func applyEdits(cmd *cobra.Command, current models.Transaction, f entryFlags) (models.Transaction, error) {
	next := current
	changed := cmd.Flags().Changed

	if changed("type") {
		t, err := models.ParseTransactionType(f.Type)
		if err != nil {
			return next, err
		}
		next.Type = t
	}
	if changed("amount") {
		amount, err := models.ParseAmount(f.Amount)
		if err != nil {
			return next, err
		}
		next.Amount = amount
	}
	if changed("date") {
		date, err := dateutils.NormalizeDate(f.Date)
		if err != nil {
			return next, err
		}
		next.Date = date
	}
	if changed("description") {
		next.Description = strings.TrimSpace(f.Description)
	}
	if changed("category") {
		next.Category = f.Category
	}
	return next, nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	b, err := common.Book()
	if err != nil {
		return err
	}
	id, err := b.ResolveTransactionID(args[0])
	if err != nil {
		return err
	}
	if err := b.DeleteTransaction(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", id)
	return nil
}

// canonicalFilterCategory matches the category case-insensitively against
// the vocabulary of t, or both vocabularies when t is unset
func canonicalFilterCategory(t models.TransactionType, category string) string {
	if category == "" {
		return ""
	}
	types := []models.TransactionType{t}
	if t == "" {
		types = []models.TransactionType{models.TypeExpense, models.TypeIncome}
	}
	for _, candidate := range types {
		if canonical, ok := models.CanonicalCategory(candidate, category); ok {
			return canonical
		}
	}
	return category
}

func inMonth(txs []models.Transaction, month string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.InMonth(month) {
			out = append(out, tx)
		}
	}
	return out
}
