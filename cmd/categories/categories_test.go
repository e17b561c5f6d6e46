package categories

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"fjacquet/finance-ledger/cmd/root"
	"fjacquet/finance-ledger/internal/config"
	"fjacquet/finance-ledger/internal/container"
	"fjacquet/finance-ledger/internal/logging"
	"fjacquet/finance-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	cfg := &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		Data:   config.DataConfig{Backend: config.BackendMemory},
		Report: config.ReportConfig{Format: "csv"},
		CSV:    config.CSVConfig{Delimiter: ";"},
	}
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(root.Teardown)
}

func execute(t *testing.T, args ...string) ([]string, error) {
	t.Helper()
	txType = ""
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&bytes.Buffer{})
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return strings.Split(strings.TrimSpace(out.String()), "\n"), err
}

func TestCategories(t *testing.T) {
	setup(t)

	lines, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "Type;Name;Color", lines[0])
	assert.Len(t, lines, 1+len(models.ExpenseCategories)+len(models.IncomeCategories))

	lines, err = execute(t, "--type", "income")
	require.NoError(t, err)
	require.Len(t, lines, 1+len(models.IncomeCategories))
	assert.True(t, strings.HasPrefix(lines[1], "income;Salary;"))
}

func TestCategories_InvalidType(t *testing.T) {
	setup(t)
	_, err := execute(t, "--type", "savings")
	assert.Error(t, err)
}
