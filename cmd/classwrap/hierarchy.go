package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/internal/listing"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <script>",
	Short: "Show registered casts and shared wrappers",
	Long: `Emit a declaration script and show the derived to base casts that were
registered, then the members each class shares with the base that
defines them.`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchy,
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	p, err := emit(cmd.Context(), args[0], listing.New(nil))
	if err != nil {
		return err
	}
	reg := p.Registry()

	fmt.Fprintln(output, "=== Casts ===")
	fmt.Fprintf(output, "%-20s %s\n", "DERIVED", "BASE")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 40))
	for _, c := range reg.Casts() {
		fmt.Fprintf(output, "%-20s %s\n", c.Derived, c.Base)
	}

	fmt.Fprintln(output)
	fmt.Fprintln(output, "=== Shared members ===")
	fmt.Fprintf(output, "%-20s %-20s %-12s %s\n", "CLASS", "MEMBER", "KIND", "DEFINED IN")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))
	shared := 0
	for _, cls := range reg.All() {
		if cls.State != classmodel.StateEmitted {
			continue
		}
		for _, m := range cls.Members {
			info := m.Info()
			if info.Base == "" || info.Base == cls.Name {
				continue
			}
			fmt.Fprintf(output, "%-20s %-20s %-12s %s\n", cls.Name, info.LookupName(), m.Kind(), info.Base)
			shared++
		}
	}

	d := reg.Dedup()
	fmt.Fprintf(output, "\nWrappers: %d, aliases: %d, shared members: %d\n", d.Len(), d.Hits(), shared)
	return nil
}
