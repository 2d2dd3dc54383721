package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cmu"
	"github.com/sarchlab/cmu/hooking"
	"github.com/sarchlab/cmu/platform/sim"
)

func newDoCmd(opts *options) *cobra.Command {
	r := &rangeFlags{}
	var dirty string

	cmd := &cobra.Command{
		Use:   "do <operation>",
		Short: "Run one operation and print the primitives it issues",
		Long: `Run one operation on a fresh simulated platform. With --dirty, ` +
			`the core first writes that many bytes from --base so that the ` +
			`data cache has something to maintain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := cmu.ParseOp(args[0])
			if err != nil {
				return err
			}

			base, size, err := r.parse()
			if err != nil {
				return err
			}

			dirtyBytes, err := strconv.ParseUint(dirty, 0, 32)
			if err != nil {
				return fmt.Errorf("invalid dirty size %q: %w", dirty, err)
			}

			p, restore, err := installSim(opts)
			if err != nil {
				return err
			}
			defer restore()

			capacity := p.Memory().Capacity()
			if dirtyBytes > capacity || base > capacity-dirtyBytes {
				return fmt.Errorf("dirty bytes reach beyond memory")
			}

			p.Core().Store(base, make([]byte, dirtyBytes))
			p.ResetStats()

			out := cmd.OutOrStdout()
			p.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
				fmt.Fprintf(out, "%-20s %s\n", ctx.Pos.Name, describe(ctx.Item))
			}))

			cmu.Do(op, uintptr(base), uintptr(size))

			s := p.Stats()
			fmt.Fprintf(out,
				"%d line ops, %d cache ops, %d write-backs, %d DSB, %d ISB\n",
				s.LineOps, s.CacheOps, s.WriteBacks,
				s.DataBarriers, s.InstructionBarriers)

			return nil
		},
	}

	r.register(cmd)
	cmd.Flags().StringVar(&dirty, "dirty", "0",
		"bytes the core writes from --base before the operation")

	return cmd
}

func describe(item any) string {
	switch e := item.(type) {
	case sim.MaintenanceEvent:
		if e.Op.IsRanged() {
			return fmt.Sprintf("%s 0x%x lines=%d", e.Op, e.Addr, e.Lines)
		}

		return fmt.Sprintf("%s lines=%d", e.Op, e.Lines)
	case sim.BarrierEvent:
		return fmt.Sprintf("drained=%d", e.Drained)
	case sim.WriteBackEvent:
		return fmt.Sprintf("0x%x by %s", e.Addr, e.Cause)
	default:
		return fmt.Sprint(item)
	}
}
