package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/oshokin/pawfeeder/internal/config"
	"github.com/oshokin/pawfeeder/internal/logger"
	"github.com/oshokin/pawfeeder/internal/service/common"
)

// address overrides the console address from settings.
var address string

func newSendCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "send <line>",
		Short: "Send one command line to a running feeder.",
		Long: `Queues a command line on a running feeder, for example:

  pawfeeder send SCHEDULE:07:00:00,18:30:00
  pawfeeder send D
  pawfeeder send AUTO

The command is executed on one of the next ticks; replies appear on the serial
channel and in the feeder log.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := dialConsole(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			line := strings.Join(args, " ")
			if err = client.Submit(ctx, line); err != nil {
				return err
			}

			logger.InfoKV(ctx, "Command queued", "line", line)

			return nil
		},
	}

	command.Flags().StringVarP(&address, "address", "a", "", "remote console address")

	return command
}

func newStatusCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "status",
		Short: "Print the status of a running feeder as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := dialConsole(ctx)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			status, err := client.Status(ctx)
			if err != nil {
				return err
			}

			output, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(status)
			if err != nil {
				return fmt.Errorf("encode status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))

			return err
		},
	}

	command.Flags().StringVarP(&address, "address", "a", "", "remote console address")

	return command
}

// dialConsole connects to the feeder named by --address or the settings.
func dialConsole(ctx context.Context) (*common.Client, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	target := settings.ListenAddress
	if address != "" {
		target = address
	}

	options := []common.Option{common.WithCallTimeout(settings.Timeout)}

	if operator, detectErr := common.DetectOperator(); detectErr == nil {
		options = append(options, common.WithOperator(operator))
	} else {
		logger.WarnKV(ctx, "Unable to detect operator", "error", detectErr)
	}

	return common.Dial(ctx, target, options...)
}
