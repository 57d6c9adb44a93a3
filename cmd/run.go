package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/pairbus/internal/script"
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run a YAML step script against the configured pairs",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	container, err := loadContainer(resolvedConfigPath())
	if err != nil {
		return err
	}

	s, err := script.Load(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := script.NewRunner(container.Guarded(), cmd.OutOrStdout(), container.Logger())
	return runner.Run(ctx, s)
}
