package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "cmusim",
		Short: "cmusim runs cache maintenance sequences on a simulated memory system.",
		Long: `cmusim runs cache maintenance sequences on a simulated core with ` +
			`a write-back data cache, an instruction cache, a write buffer and a ` +
			`DMA engine, and checks what every bus master observes afterwards.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
	}

	opts.register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newScenarioCmd(opts),
		newOpsCmd(),
		newSpanCmd(opts),
		newDoCmd(opts),
	)

	return rootCmd
}
