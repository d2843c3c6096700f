package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alumni-portal/backend/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
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
		return database.Migrate(db)
	},
}
