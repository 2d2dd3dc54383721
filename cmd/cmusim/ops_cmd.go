package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cmu"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the maintenance operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OPERATION\tCACHE\tSCOPE\tBARRIERS")

			for _, op := range cmu.AllOps() {
				cache, scope, barriers := "data", "whole", "DSB"
				if op.IsInstruction() {
					cache, barriers = "instruction", "DSB, ISB"
				}

				if op.IsRanged() {
					scope = "range"
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", op, cache, scope, barriers)
			}

			return w.Flush()
		},
	}
}
