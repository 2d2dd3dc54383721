package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cmu/hooking"
	"github.com/sarchlab/cmu/internal/scenario"
	"github.com/sarchlab/cmu/tracing"
)

func newScenarioCmd(opts *options) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "scenario [names...]",
		Short: "Run maintenance scenarios, all of them if no name is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listScenarios(cmd)
			}

			return runScenarios(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false,
		"list the scenarios instead of running them")

	return cmd
}

func listScenarios(cmd *cobra.Command) error {
	for _, s := range scenario.All() {
		kind := ""
		if s.Negative {
			kind = " (negative)"
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n    %s\n",
			s.Name, kind, s.Description)
	}

	return nil
}

func selectScenarios(names []string) ([]scenario.Scenario, error) {
	if len(names) == 0 {
		return scenario.All(), nil
	}

	selected := make([]scenario.Scenario, 0, len(names))

	for _, name := range names {
		s, err := scenario.Lookup(name)
		if err != nil {
			return nil, err
		}

		selected = append(selected, s)
	}

	return selected, nil
}

func runScenarios(cmd *cobra.Command, opts *options, names []string) error {
	config, err := opts.simConfig()
	if err != nil {
		return err
	}

	selected, err := selectScenarios(names)
	if err != nil {
		return err
	}

	var hooks []hooking.Hook

	if opts.trace != "" {
		recorder, err := tracing.NewRecorder(opts.trace)
		if err != nil {
			return err
		}

		defer func() {
			if err := recorder.Close(); err != nil {
				log.WithError(err).Error("Failed to close trace")
			}
		}()

		hooks = append(hooks, recorder)
	}

	failed := 0

	for _, s := range selected {
		res := scenario.Run(s, config, hooks...)

		if res.Passed() {
			fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", res.Name)
			continue
		}

		failed++
		fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", res.Name, res.Err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(selected))
	}

	return nil
}
