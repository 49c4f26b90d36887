package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/internal/listing"
)

var (
	classesKind string
)

var classesCmd = &cobra.Command{
	Use:   "classes <script>",
	Short: "List the class records collected from a script",
	Long: `List every class record in declaration order after collection,
including shadowed, aborted and placeholder records.

Use --kind to filter by class kind (struct, union, class).`,
	Args: cobra.ExactArgs(1),
	RunE: runClasses,
}

func init() {
	classesCmd.Flags().StringVarP(&classesKind, "kind", "k", "", "filter by class kind (struct, union, class)")
}

func runClasses(cmd *cobra.Command, args []string) error {
	var kindFilter classmodel.ClassKind
	if classesKind != "" {
		k, err := classmodel.ParseClassKind(strings.ToLower(classesKind))
		if err != nil {
			return fmt.Errorf("unknown class kind: %s", classesKind)
		}
		kindFilter = k
	}

	p, err := collect(cmd.Context(), args[0], listing.New(nil))
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%-20s %-7s %-11s %-7s %s\n", "NAME", "KIND", "STATE", "MEMBERS", "BASES")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))

	count := 0
	for _, cls := range p.Registry().All() {
		if kindFilter != classmodel.KindNone && cls.Kind != kindFilter {
			continue
		}
		kind := string(cls.Kind)
		if kind == "" {
			kind = "-"
		}
		fmt.Fprintf(output, "%-20s %-7s %-11s %-7d %s%s\n",
			cls.Name, kind, cls.State, len(cls.Members), strings.Join(cls.Bases, ", "), classFlags(cls))
		count++
	}

	fmt.Fprintf(output, "\nTotal: %d classes\n", count)
	return nil
}

// classFlags renders the notable attributes of cls.
func classFlags(cls *classmodel.Class) string {
	var flags []string
	if cls.Rename != "" {
		flags = append(flags, "renamed "+cls.Rename)
	}
	if cls.Abstract {
		flags = append(flags, "abstract")
	}
	if cls.ImportMode {
		flags = append(flags, "imported")
	}
	if cls.Error {
		flags = append(flags, "error")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ", ") + "]"
}
