// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoPGManager/GoPGManager/internal/config"
)

const defaultConfigPath = "./etc"

var (
	configPath string        //nolint:gochecknoglobals // path of the directory holding main.toml
	cfg        config.Config //nolint:gochecknoglobals

	rootCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "pgmanager",
		Short: "GoPGManager manages paying guest accommodations",
		Long: `GoPGManager is the API of a PG/hostel manager. Owners run one property and
delegate parts of it to managers through per-group view and manage capabilities.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "directory containing main.toml")
}

// readConfig loads the configuration for a command.
func readConfig() error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}
