package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/config"
	"github.com/polumm/lifecalc/internal/output"
)

// compare focuses on how scenarios differ: final outcomes ranked, the
// differing parameters, and when one curve overtakes another. For the full
// per-year series use `simulate -f csv`.
func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <scenario-file>",
		Short: "Rank scenarios and show what drives the differences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(engineLogger{logger})
			comparison, err := engine.RunScenarios(cmd.Context(), file.Scenarios)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if line := output.FormatCommonParameters(comparison.CommonParameters); line != "" {
				fmt.Fprintln(out, line)
				fmt.Fprintln(out)
			}

			ranked := make([]int, len(comparison.Results))
			for i := range ranked {
				ranked[i] = i
			}
			sort.Slice(ranked, func(a, b int) bool {
				return comparison.Results[ranked[a]].Trajectory.FinalTotalAssets().
					GreaterThan(comparison.Results[ranked[b]].Trajectory.FinalTotalAssets())
			})

			diffByLabel := make(map[string]map[string]string, len(comparison.Diffs))
			for _, d := range comparison.Diffs {
				diffByLabel[d.Label] = d.Fields
			}

			for rank, idx := range ranked {
				res := comparison.Results[idx]
				fmt.Fprintf(out, "%d. %s: %s final assets (%s from initial capital)\n",
					rank+1, res.Label,
					output.FormatCurrency(res.Trajectory.FinalTotalAssets()),
					output.FormatPercent(res.Trajectory.FinalInitialAssetShare()))
				fields := diffByLabel[res.Label]
				keys := make([]string, 0, len(fields))
				for k := range fields {
					if k == "inflation_rate" {
						continue
					}
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "     %s=%s\n", k, fields[k])
				}
			}

			if len(comparison.Crossovers) > 0 {
				fmt.Fprintln(out)
				for _, cross := range comparison.Crossovers {
					fmt.Fprintf(out, "%q overtakes %q in year %d (around %s)\n",
						cross.Overtaker, cross.Overtaken, cross.YearIndex,
						output.FormatCurrency(cross.Assets))
				}
			}
			return nil
		},
	}
}
