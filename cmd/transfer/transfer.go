// Package transfer handles CSV import and export of transactions
package transfer

import (
	"errors"
	"fmt"

	"fjacquet/finance-ledger/cmd/common"
	"fjacquet/finance-ledger/cmd/root"
	csvio "fjacquet/finance-ledger/internal/common"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/parsererror"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	partial    bool
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions to CSV",
	Long: `Export transactions as CSV with the columns ID, Date, Type, Category, Amount
and Description, using the configured delimiter. With --month only that
month is exported.

Example:
  finance-ledger export -o transactions.csv`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

// ImportCmd represents the import command
var ImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import transactions from CSV",
	Long: `Import transactions from a CSV file with the columns Date, Type, Category,
Amount and Description (ID is optional). Rows with an empty Type take it from
the amount sign: negative amounts are expenses.

The import is all or nothing unless --partial is given, in which case the
valid rows are imported and the rejected ones reported.`,
	Args: cobra.ExactArgs(1),
	RunE: importFunc,
}

func init() {
	ExportCmd.Flags().StringVarP(&outputFile, "output", "o", "-", "Output file, - for standard output")
	ImportCmd.Flags().BoolVar(&partial, "partial", false, "Import the valid rows even when some are rejected")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	txs := c.GetBook().Transactions()
	if month := root.Flags.Month; month != "" {
		filtered := make([]models.Transaction, 0, len(txs))
		for _, tx := range txs {
			if tx.InMonth(month) {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	delimiter := c.GetConfig().Delimiter()
	if outputFile == "" || outputFile == "-" {
		return csvio.WriteTransactions(cmd.OutOrStdout(), txs, delimiter)
	}
	if err := csvio.WriteTransactionsCSV(txs, outputFile, delimiter, c.GetLogger()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txs), outputFile)
	return nil
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := c.GetLogger()
	inputFile := args[0]

	txs, err := csvio.ReadTransactionsCSV(inputFile, c.GetConfig().Delimiter(), logger)
	var rowErrs parsererror.RowErrors
	switch {
	case errors.As(err, &rowErrs):
		for _, rowErr := range rowErrs {
			fmt.Fprintln(cmd.ErrOrStderr(), rowErr.Error())
		}
		if !partial {
			return &parsererror.ValidationError{
				FilePath: inputFile,
				Reason:   "import aborted, nothing was recorded",
				Err:      err,
			}
		}
	case err != nil:
		return err
	}

	b, err := common.Book()
	if err != nil {
		return err
	}
	added, err := b.ImportTransactions(cmd.Context(), txs)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	logger.Info("Imported transactions",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldCount, len(added)),
		logging.F("rejected", len(rowErrs)))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s", len(added), inputFile)
	if len(rowErrs) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d rows rejected)", len(rowErrs))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
