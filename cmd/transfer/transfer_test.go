package transfer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/config"
	"fjacquet/finance-ledger/internal/container"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/parsererror"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		Data:   config.DataConfig{Backend: config.BackendMemory},
		Report: config.ReportConfig{Format: "text"},
		CSV:    config.CSVConfig{Delimiter: ","},
	}
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	root.Flags.Month = ""
	t.Cleanup(root.Teardown)
	return c
}

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	outputFile, partial = "-", false
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0600))
	return path
}

func TestImportThenExport(t *testing.T) {
	c := setup(t)
	path := writeCSV(t,
		"Date,Type,Category,Amount,Description",
		"2024-01-03,expense,Food & Dining,20.5,Lunch",
		"2024-02-01,income,Salary,1000,Pay",
	)

	out, _, err := execute(ImportCmd, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 transactions")
	require.Len(t, c.GetBook().Transactions(), 2)

	out, _, err = execute(ExportCmd)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Date,Type,Category,Amount,Description", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",2024-01-03,expense,Food & Dining,20.50,Lunch"), lines[1])

	root.Flags.Month = "2024-02"
	defer func() { root.Flags.Month = "" }()
	out, _, err = execute(ExportCmd)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestImport_RejectedRowsAbort(t *testing.T) {
	c := setup(t)
	path := writeCSV(t,
		"Date,Type,Category,Amount,Description",
		"2024-01-03,expense,Food & Dining,20.5,Lunch",
		"2024-01-04,expense,Food & Dining,lots,Dinner",
	)

	_, errOut, err := execute(ImportCmd, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing was recorded")
	var rejected *parsererror.ValidationError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, path, rejected.FilePath)
	var rowErrs parsererror.RowErrors
	require.True(t, errors.As(err, &rowErrs))
	assert.Len(t, rowErrs, 1)
	assert.Contains(t, errOut, "row 2")
	assert.Empty(t, c.GetBook().Transactions())

	out, _, err := execute(ImportCmd, path, "--partial")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 transactions")
	assert.Contains(t, out, "1 rows rejected")
	assert.Len(t, c.GetBook().Transactions(), 1)
}

func TestImport_MissingColumns(t *testing.T) {
	setup(t)
	path := writeCSV(t, "When,What", "2024-01-01,x")
	_, _, err := execute(ImportCmd, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestExport_ToFile(t *testing.T) {
	setup(t)
	path := writeCSV(t,
		"Date,Type,Category,Amount,Description",
		"2024-01-03,expense,Travel,300,Flight",
	)
	_, _, err := execute(ImportCmd, path)
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "nested", "out.csv")
	out, _, err := execute(ExportCmd, "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 transactions")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Travel,300.00,Flight")
}
