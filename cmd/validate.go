package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/pairbus/internal/bus"
	"github.com/crystaldolphin/pairbus/internal/shared/stringutils"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a config file and list the names it binds",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()
	if len(args) == 1 {
		path = args[0]
	}

	container, err := loadContainer(path)
	if err != nil {
		return err
	}

	set := container.PairedSet()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s: %d pair(s), recording=%t\n", path, len(set.Pairs()), set.Recording())

	for _, name := range set.Names() {
		b, _ := set.Lookup(name)
		fmt.Fprintf(out, "  %-20s %-9s %s\n", stringutils.Truncate(name, 20), b.Kind, b.Pair)
	}
	if n := 2*len(set.Pairs()) - len(set.Names()); n > 0 {
		fmt.Fprintf(out, "Warning: %d name(s) overwritten by later pairs: %s\n", n, strings.Join(shadowed(set.Pairs()), ", "))
	}
	return nil
}

// shadowed lists names that appear more than once across all pairs.
func shadowed(pairs []bus.Pair) []string {
	seen := make(map[string]int)
	var dup []string
	for _, p := range pairs {
		for _, name := range []string{p.Producer, p.Consumer} {
			seen[name]++
			if seen[name] == 2 {
				dup = append(dup, name)
			}
		}
	}
	return dup
}
