package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/pairbus/internal/config"
)

var onboardForce bool

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write a default configuration file",
	RunE:  runOnboard,
}

func init() {
	onboardCmd.Flags().BoolVarP(&onboardForce, "force", "f", false, "Overwrite an existing config")
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfgPath); err == nil && !onboardForce {
		fmt.Fprintf(out, "Config already exists at %s (use --force to overwrite)\n", cfgPath)
		return nil
	}

	cfg := config.DefaultConfig()
	if err := config.Save(&cfg, cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Created config at %s\n", cfgPath)

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Edit the pairs in %s\n", cfgPath)
	fmt.Fprintln(out, "  2. Try it: pairbus repl")
	return nil
}
