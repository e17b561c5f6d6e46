package config

import (
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finance-ledger/internal/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadEnv loads a .env file from the working directory or its parent into
// the process environment. It returns the file loaded, or "" when none was.
// Variables already set in the environment are never overwritten.
func LoadEnv(logger logging.Logger) string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldPath, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldPath, envFile))
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// NewLogger builds the application logger from the log section
func NewLogger(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(cfg.Log.Level), strings.ToLower(cfg.Log.Format))
}

// ToYAML renders the effective configuration
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
