package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oshokin/pawfeeder/internal/config"
	"github.com/oshokin/pawfeeder/internal/dispenser"
)

// errSettingsExist is returned by init when the file is already there.
var errSettingsExist = errors.New("settings file already exists, use --force to overwrite")

func newProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in dispense profiles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			_, _ = fmt.Fprintln(w, "NAME\tFEED ANGLE\tMOTOR PORT\tDURATION")

			for _, name := range dispenser.Names() {
				profile, err := dispenser.Lookup(name)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(w, "%s\t%d\tM%d\t%s\n", name, profile.FeedAngle, profile.MotorPort, profile.Duration())
			}

			return w.Flush()
		},
	}
}

func newInitCommand() *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%w: %s", errSettingsExist, configPath)
			}

			if err := config.Save(configPath, config.Default()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "settings written to %s\n", configPath)

			return err
		},
	}

	command.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return command
}
