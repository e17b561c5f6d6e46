// Package common provides the CSV import and export shared by the commands.
package common

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"
	"fjacquet/finance-ledger/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// TransactionRow is the CSV layout of a transaction. Every field is read as
// text so that a bad value can be reported with its row number.
type TransactionRow struct {
	ID          string `csv:"ID"`
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
	Description string `csv:"Description"`
}

// RequiredColumns must be present in an imported file; ID is optional
var RequiredColumns = []string{"Date", "Type", "Category", "Amount", "Description"}

func decodeCSV(r io.Reader, delimiter rune) ([]TransactionRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TransactionRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadTransactionsCSV imports transactions from a CSV file. Rows that cannot
// be converted are returned as parsererror.RowErrors next to the rows that
// could; callers decide whether a partial import is acceptable.
func ReadTransactionsCSV(filePath string, delimiter rune, logger logging.Logger) ([]models.Transaction, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	if err := checkHeader(filePath, data, delimiter); err != nil {
		return nil, err
	}

	rows, err := decodeCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	source := filepath.Base(filePath)
	txs := make([]models.Transaction, 0, len(rows))
	var rowErrs parsererror.RowErrors
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		tx, perr := row.ToTransaction()
		if perr != nil {
			perr.Source = source
			perr.Row = i + 1
			rowErrs = append(rowErrs, perr)
			logger.Warn("Skipping invalid CSV row",
				logging.F(logging.FieldInputFile, filePath),
				logging.F("row", i+1),
				logging.F(logging.FieldReason, perr.Err.Error()))
			continue
		}
		txs = append(txs, tx)
	}

	logger.Info("Read transactions from CSV",
		logging.F(logging.FieldInputFile, filePath),
		logging.F(logging.FieldCount, len(txs)),
		logging.F("rejected", len(rowErrs)))

	if len(rowErrs) > 0 {
		return txs, rowErrs
	}
	return txs, nil
}

func checkHeader(filePath string, data []byte, delimiter rune) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "CSV with header " + strings.Join(RequiredColumns, string(delimiter)),
			Msg:            "file is empty",
		}
	}
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		snippet := strings.Join(header, string(delimiter))
		if len(snippet) > 80 {
			snippet = snippet[:80]
		}
		return &parsererror.InvalidFormatError{
			FilePath:             filePath,
			ExpectedFormat:       "CSV with header " + strings.Join(RequiredColumns, string(delimiter)),
			ActualContentSnippet: snippet,
			Msg:                  "missing columns " + strings.Join(missing, ", "),
		}
	}
	return nil
}

func isBlank(row TransactionRow) bool {
	return strings.TrimSpace(row.Date+row.Type+row.Category+row.Amount+row.Description+row.ID) == ""
}

// ToTransaction converts a row into a validated transaction. A missing type
// is taken from the amount sign: negative amounts are expenses. A missing ID
// gets a fresh one. The returned error has no source or row set.
func (r TransactionRow) ToTransaction() (models.Transaction, *parsererror.ParseError) {
	amount, err := models.ParseAmount(r.Amount)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Field: "Amount", Value: r.Amount, Err: err}
	}

	// without a Type column value the sign decides, and only the magnitude is kept
	var txType models.TransactionType
	if strings.TrimSpace(r.Type) == "" {
		txType = models.TypeIncome
		if amount.IsNegative() {
			txType = models.TypeExpense
		}
		amount = amount.Abs()
	} else if txType, err = models.ParseTransactionType(r.Type); err != nil {
		return models.Transaction{}, &parsererror.ParseError{Field: "Type", Value: r.Type, Err: err}
	}

	date, err := dateutils.NormalizeDate(r.Date)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Field: "Date", Value: r.Date, Err: err}
	}

	category, ok := models.CanonicalCategory(txType, r.Category)
	if !ok {
		return models.Transaction{}, &parsererror.ParseError{
			Field: "Category",
			Value: r.Category,
			Err:   fmt.Errorf("not a %s category", txType),
		}
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.NewString()
	}
	tx := models.Transaction{
		ID:          id,
		Date:        date,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(r.Description),
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, &parsererror.ParseError{Field: "row", Value: r.Description, Err: err}
	}
	return tx, nil
}

// NewTransactionRow formats tx for export; amounts always carry two decimals
func NewTransactionRow(tx models.Transaction) TransactionRow {
	return TransactionRow{
		ID:          tx.ID,
		Date:        tx.Date,
		Type:        string(tx.Type),
		Category:    tx.Category,
		Amount:      tx.Amount.Abs().StringFixed(2),
		Description: tx.Description,
	}
}

// WriteTransactions writes transactions as CSV to w
func WriteTransactions(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	rows := make([]TransactionRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, NewTransactionRow(tx))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsCSV writes transactions to a CSV file, creating its
// directory when needed. The file is readable by its owner only.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile string, delimiter rune, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	logger.Info("Writing transactions to CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(csvFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionDataFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}

	if err := WriteTransactions(file, transactions, delimiter); err != nil {
		_ = file.Close()
		logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing CSV file: %w", err)
	}

	logger.Info("Successfully wrote transactions to CSV file",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)))
	return nil
}
