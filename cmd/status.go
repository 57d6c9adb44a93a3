package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/pairbus/internal/config"
	"github.com/crystaldolphin/pairbus/internal/retention"
	"github.com/crystaldolphin/pairbus/internal/shared/stringutils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pairbus configuration status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()
	out := cmd.OutOrStdout()

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗ (using defaults)"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Fprintf(out, "Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(out, "  (could not load config: %v)\n", err)
		return nil
	}

	fmt.Fprintf(out, "Recording: %t\n", cfg.Recording)
	fmt.Fprintf(out, "Logging:   %s/%s\n", cfg.Log.Level, cfg.Log.Format)

	switch sched := cfg.Retention.Schedule; sched {
	case "":
		fmt.Fprintln(out, "Retention: off")
	default:
		if s, err := retention.ParseSchedule(sched); err != nil {
			fmt.Fprintf(out, "Retention: %s ✗ %v\n", sched, err)
		} else {
			fmt.Fprintf(out, "Retention: %s (next %s)\n", sched, s.Next(time.Now()).Format("2006-01-02 15:04"))
		}
	}

	pairs, err := cfg.PairList()
	if err != nil {
		fmt.Fprintf(out, "Pairs:     ✗ %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nPairs (%d):\n", len(pairs))
	fmt.Fprintf(out, "  %-20s %-20s\n", "Producer", "Consumer")
	for _, p := range pairs {
		fmt.Fprintf(out, "  %-20s %-20s\n", stringutils.Truncate(p.Producer, 20), stringutils.Truncate(p.Consumer, 20))
	}
	return nil
}
