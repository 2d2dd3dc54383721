package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cmu"
	"github.com/sarchlab/cmu/platform/sim"
)

type rangeFlags struct {
	base string
	size string
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.base, "base", "0", "first byte of the range")
	cmd.Flags().StringVar(&r.size, "size", "0", "length of the range in bytes")
}

func (r *rangeFlags) parse() (base, size uint64, err error) {
	base, err = strconv.ParseUint(r.base, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid base %q: %w", r.base, err)
	}

	size, err = strconv.ParseUint(r.size, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", r.size, err)
	}

	return base, size, nil
}

// installSim builds a simulated platform from the global flags and installs
// it. The returned function restores the previous platform.
func installSim(opts *options) (*sim.Platform, func(), error) {
	config, err := opts.simConfig()
	if err != nil {
		return nil, nil, err
	}

	p := sim.New(config)
	prev := cmu.SetPlatform(p)

	return p, func() { cmu.SetPlatform(prev) }, nil
}

func newSpanCmd(opts *options) *cobra.Command {
	r := &rangeFlags{}

	cmd := &cobra.Command{
		Use:   "span",
		Short: "Print the cache lines a ranged operation covers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, size, err := r.parse()
			if err != nil {
				return err
			}

			p, restore, err := installSim(opts)
			if err != nil {
				return err
			}
			defer restore()

			start, end := cmu.LineSpan(uintptr(base), uintptr(size))
			lines := (end - start) / p.LineSize()

			fmt.Fprintf(cmd.OutOrStdout(), "[0x%x, 0x%x) %d lines\n",
				start, end, lines)

			return nil
		},
	}

	r.register(cmd)

	return cmd
}
