package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alumni-portal/backend/database"
	"github.com/alumni-portal/backend/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and load the demo dataset",
	Long: `Migrate the schema and insert the demo departments, users, profiles,
organizer and events. Records that already exist are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		db, closeDB, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := database.Migrate(db); err != nil {
			return err
		}
		return seed.Run(cmd.Context(), db, cfg.Location())
	},
}
