// Package cmd implements the pairbus CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/pairbus/internal/config"
	"github.com/crystaldolphin/pairbus/internal/dependency"
)

const version = "0.1.0"

var configPath string

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:           "pairbus",
	Short:         "pairbus: named pass/receive channels",
	Long:          "pairbus builds named pass/receive channel pairs from a config file and drives them from scripts or an interactive session.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.pairbus/config.yaml)")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

// loadContainer loads the config file at path and wires services from it.
func loadContainer(path string) (*dependency.Container, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return dependency.New(cfg)
}
