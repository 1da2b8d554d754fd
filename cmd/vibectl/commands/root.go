package commands

import (
	"fmt"
	"os"

	"vibemarket-backend/bootstrap"
	"vibemarket-backend/internal/config"
	"vibemarket-backend/internal/infrastructure/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURL      string
	adminEmail string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "vibectl",
	Short: "Operator tool for the vibe marketplace",
	Long: `vibectl manages the vibe marketplace database directly.

Commands:
  migrate   - Create or update the vibes and vibe_events tables
  seed      - Insert the demo catalog as approved vibes
  pending   - List the moderation queue
  approve   - Approve a pending vibe
  reject    - Reject a pending vibe`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to the environment config)")
	rootCmd.PersistentFlags().StringVar(&adminEmail, "admin-email", "", "Admin email to act as (defaults to the first ADMIN_EMAILS entry)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// loadEnv reads the environment config and applies flag overrides.
func loadEnv() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	bootstrap.SetupLogger(cfg.Env)
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if adminEmail == "" && len(cfg.AdminEmails) > 0 {
		adminEmail = cfg.AdminEmails[0]
	}
	return cfg, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no database URL: pass --db or set DATABASE_URL_DEV")
	}
	return database.Open(cfg.DatabaseURL)
}
