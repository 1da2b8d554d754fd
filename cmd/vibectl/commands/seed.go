package commands

import (
	"fmt"

	"vibemarket-backend/internal/application/catalog"
	"vibemarket-backend/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo catalog as approved vibes",
	Long: `Insert the embedded demo catalog as approved vibes owned by the seed user.

Entries whose title already exists are skipped, so seed can be run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadEnv()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		entries, err := catalog.Entries()
		if err != nil {
			return err
		}
		n, err := catalog.Seed(cmd.Context(), db, entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d catalog vibes\n", n, len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
