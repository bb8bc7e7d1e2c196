package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoPGManager/GoPGManager/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return readConfig()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := daemon.OpenDB(cfg.DB)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = daemon.Migrate(db); err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Msg("database migrated")

		return nil
	},
}
