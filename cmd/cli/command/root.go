package command

// root.go defines the root command for editorialctl and the shared setup helpers.

import (
	"fmt"
	"log/slog"
	"os"

	"editorial/database"
	"editorial/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var apiURL string // Global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "editorialctl",
	Short: "editorialctl - editorial workflow administration",
	Long: `editorialctl manages an editorial deployment. It can:
- Create or update the database schema and load demo data
- Create accounts and change roles without going through the web UI
- Export the manuscripts report as CSV
- Log in to a running API server and show its statistics

Database commands read the same environment (and .env file) as the API server.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://127.0.0.1:8080", "API server URL")
}

// openDatabase loads the server configuration and connects to its database.
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// keep the CLI output readable: only warnings and errors from the database layer
	cfg.LogLevel = "warn"
	log := cfg.NewLogger(os.Stderr)
	slog.SetDefault(log)

	db, err := database.OpenGorm(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func success(format string, args ...any) {
	color.Green("✓ "+format, args...)
}
