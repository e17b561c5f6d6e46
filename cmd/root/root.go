// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/finance-ledger/internal/config"
	"fjacquet/finance-ledger/internal/container"
	"fjacquet/finance-ledger/internal/dateutils"
	"fjacquet/finance-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags holds the persistent flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	DataDir    string
	Backend    string
	Format     string
	Month      string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the dependencies built before each command runs
	AppContainer *container.Container

	// Flags are the values of the persistent flags
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finance-ledger",
		Short: "Track income, expenses and monthly budgets from the command line.",
		Long: `finance-ledger records income and expense transactions, sets monthly
spending budgets per category, and derives dashboards, insights and trends
from them. Data is kept in a local directory as JSON files or in SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Teardown()
		},
	}
)

// Init registers the persistent flags on the root command
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVar(&Flags.ConfigFile, "config", "", "Config file (default $HOME/.finance-ledger/config.yaml)")
	pf.StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&Flags.LogFormat, "log-format", "", "Log format (text, json)")
	pf.StringVar(&Flags.DataDir, "data-dir", "", "Directory holding the ledger data")
	pf.StringVar(&Flags.Backend, "backend", "", "Storage backend (file, sqlite, memory)")
	pf.StringVarP(&Flags.Format, "format", "f", "", "Output format (text, json, yaml, csv)")
	pf.StringVarP(&Flags.Month, "month", "m", "", "Reference month as YYYY-MM (default: current month)")
}

// Setup loads .env and the configuration, applies flag overrides and builds
// the container
func Setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	config.LoadEnv(Log)

	cfg, err := config.Load(Flags.ConfigFile)
	if err != nil {
		return err
	}
	if err := ApplyOverrides(cfg, Flags); err != nil {
		return err
	}
	if Flags.Month != "" && !dateutils.IsMonthKey(Flags.Month) {
		return fmt.Errorf("invalid --month %q: expected YYYY-MM", Flags.Month)
	}

	Log = config.NewLogger(cfg)
	c, err := container.NewContainerWithLogger(ctx, cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	return nil
}

// ApplyOverrides copies the non-empty flags over cfg and validates the result
func ApplyOverrides(cfg *config.Config, flags GlobalFlags) error {
	if flags.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(flags.LogLevel)
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = strings.ToLower(flags.LogFormat)
	}
	if flags.DataDir != "" {
		cfg.Data.Directory = flags.DataDir
	}
	if flags.Backend != "" {
		cfg.Data.Backend = strings.ToLower(flags.Backend)
	}
	if flags.Format != "" {
		cfg.Report.Format = strings.ToLower(flags.Format)
	}
	return cfg.Validate()
}

// Teardown closes the container built by Setup
func Teardown() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close store")
	}
	AppContainer = nil
}

// SetContainer installs c as the application container
func SetContainer(c *container.Container) {
	AppContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the application container or an error when no
// command setup has run
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}
