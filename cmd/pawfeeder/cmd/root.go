package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/pawfeeder/internal/config"
	"github.com/oshokin/pawfeeder/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// envFile is the optional .env file with PAWFEEDER_* overrides.
	envFile string

	// rootCmd is the base command; it only groups subcommands.
	rootCmd = &cobra.Command{
		Use:   "pawfeeder",
		Short: "Automated pet feeder controller.",
		Long: `Runs the feeder control loop and talks to a running feeder.

Settings come from a YAML file, then PAWFEEDER_* environment variables
(optionally loaded from a .env file), then command line flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
)

// Execute runs the pawfeeder CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file with overrides")

	rootCmd.AddCommand(newRunCommand(), newSendCommand(), newStatusCommand(), newProfilesCommand(), newInitCommand())
}
