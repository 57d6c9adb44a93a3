package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/crystaldolphin/pairbus/internal/script"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Drive the configured pairs interactively",
	Long: `Reads one command per line:

  pass <name> [args...]     call a producer
  receive <name> [label]    register a printing consumer
  history <name>            list stored calls
  clear                     drop all stored calls

The retention schedule from the config, if any, runs alongside.`,
	RunE: runREPL,
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runREPL(cmd *cobra.Command, _ []string) error {
	container, err := loadContainer(resolvedConfigPath())
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	out := cmd.OutOrStdout()
	runner := script.NewRunner(container.Guarded(), out, container.Logger())

	fmt.Fprintf(out, "Bound names: %s\n", strings.Join(container.PairedSet().Names(), ", "))
	fmt.Fprintln(out, "Type 'exit' or Ctrl+C to quit.")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return container.Scheduler().Start(gctx) })
	g.Go(func() error {
		// Ending the session stops the scheduler too.
		defer cancel()
		return readLoop(gctx, cmd.InOrStdin(), out, runner)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readLoop executes lines from in until EOF, an exit command, or ctx ends.
// Bad lines are reported and skipped.
func readLoop(ctx context.Context, in io.Reader, out io.Writer, runner *script.Runner) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			line = l
		}

		if exitCommands[strings.ToLower(strings.TrimSpace(line))] {
			return nil
		}

		step, ok, err := script.ParseLine(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if !ok {
			continue
		}
		if err := runner.Exec(step); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
