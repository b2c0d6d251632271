package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/polumm/lifecalc/internal/domain"
)

// ConsoleFormatter renders a concise plain-text comparison: one summary
// block per scenario plus the shared-parameter annotation and crossovers.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "WEALTH TRAJECTORY COMPARISON")
	fmt.Fprintln(&buf, "============================")

	if line := FormatCommonParameters(results.CommonParameters); line != "" {
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf)

	diffByLabel := make(map[string]map[string]string, len(results.Diffs))
	for _, d := range results.Diffs {
		diffByLabel[d.Label] = d.Fields
	}

	for _, res := range results.Results {
		tr := res.Trajectory
		last := tr.Points() - 1
		fmt.Fprintf(&buf, "%s: FinalAssets=%s Investment=%s Savings=%s\n",
			res.Label,
			FormatCurrency(tr.TotalAssets[last]),
			FormatCurrency(tr.InvestmentAccount[last]),
			FormatCurrency(tr.SavingsAccount[last]),
		)
		fmt.Fprintf(&buf, "  FromInitialCapital=%s FromContributions=%s (initial share %s)\n",
			FormatCurrency(tr.InitialAssetOnly[last]),
			FormatCurrency(tr.IncomeContributionOnly[last]),
			FormatPercent(tr.FinalInitialAssetShare()),
		)
		if fields := diffByLabel[res.Label]; len(fields) > 0 {
			keys := make([]string, 0, len(fields))
			for k := range fields {
				if k == "inflation_rate" {
					continue
				}
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&buf, "  %s=%s\n", k, fields[k])
			}
		}
	}

	if len(results.Crossovers) > 0 {
		fmt.Fprintln(&buf)
		for _, cross := range results.Crossovers {
			fmt.Fprintf(&buf, "Crossover: %q overtakes %q in year %d (at ~%s)\n",
				cross.Overtaker, cross.Overtaken, cross.YearIndex, FormatCurrency(cross.Assets))
		}
	}

	return buf.Bytes(), nil
}

// FormatCommonParameters renders the parameters shared by all compared
// scenarios as a single line. The inert inflation_rate is hidden from
// display, as the original comparison view did.
func FormatCommonParameters(common map[string]string) string {
	if len(common) == 0 {
		return "No common parameters. All differ!"
	}
	keys := make([]string, 0, len(common))
	for k := range common {
		if k == "inflation_rate" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString("Common among scenarios: ")
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s=%s", k, common[k])
	}
	return buf.String()
}
