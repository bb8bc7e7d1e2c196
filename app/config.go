package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoPGManager/GoPGManager/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "print JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool //nolint:gochecknoglobals

	configCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return readConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			redacted := cfg.Redacted()

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&redacted)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}
)
