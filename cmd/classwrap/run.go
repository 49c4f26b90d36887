package main

import (
	"github.com/spf13/cobra"

	"github.com/skdltmxn/classwrap/internal/listing"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Collect a declaration script and list what a backend is asked to bind",
	Long: `Replay a declaration script, emit every class and print one line per
backend registration: functions, aliases, variables, constants and casts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	b := listing.New(output)
	p, err := emit(cmd.Context(), args[0], b)
	if err != nil {
		return err
	}
	created, aliased := b.Counts()
	logger.Info("emitted",
		"classes", p.Registry().Len(),
		"functions", created,
		"aliases", aliased,
		"casts", len(p.Registry().Casts()),
		"warnings", len(p.Diagnostics()),
	)
	return nil
}
