package main

import (
	"github.com/spf13/cobra"

	"usersvc/shared/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the development schema",
	Long: `Create the users, auth, user_roles and user_divisions tables if they do
not exist. Existing tables are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Schema applied")
		return nil
	},
}
