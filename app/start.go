package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoPGManager/GoPGManager/internal/daemon"
	"github.com/GoPGManager/GoPGManager/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool //nolint:gochecknoglobals

	startCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "start",
		Short: "Start the GoPGManager web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return logger.Init(cfg.Log) //nolint:wrapcheck
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			defer logger.Close()

			d, err := daemon.New(&cfg)
			if err != nil {
				log.Error().Err(err).Msg("failed to start")
				return err //nolint:wrapcheck
			}

			return d.Start() //nolint:wrapcheck
		},
	}
)
