package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pawfeeder/internal/service/feeder"
)

func newRunCommand() *cobra.Command {
	options := new(feeder.Options)

	command := &cobra.Command{
		Use:   "run",
		Short: "Run the feeder control loop.",
		Long: `Starts the control loop: reads the clock every tick, dispenses at scheduled
times in automatic mode and executes one command line per tick.

Commands arrive on the serial device ("stdio" for the terminal) and through the
gRPC remote console when a listen address is set.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.ConfigPath = configPath

			return feeder.Run(ctx, options)
		},
	}

	flags := command.Flags()
	flags.StringVarP(&options.SerialDevice, "serial", "s", "", `serial device path or "stdio"`)
	flags.StringVarP(&options.ListenAddress, "listen", "l", "", "remote console listen address")
	flags.StringVarP(&options.Profile, "profile", "p", "", "dispense profile name")
	flags.StringVarP(&options.JournalFile, "journal", "j", "", "path to the dispense journal")

	return command
}
