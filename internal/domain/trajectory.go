package domain

import (
	"github.com/shopspring/decimal"
)

// Trajectory holds the time series produced by simulating one scenario.
// Every slice has NumYears+1 entries, indexed by year offset 0..NumYears.
//
// TotalAssets is partitioned exactly into InitialAssetOnly (what the starting
// capital alone would have grown to) and IncomeContributionOnly (what the
// income contributions alone would have grown to). Because the engine uses
// decimal arithmetic and the recurrences are linear, the partition is exact,
// not merely within floating-point tolerance.
type Trajectory struct {
	Years []int `json:"years"`
	Ages  []int `json:"ages"`

	Incomes           []decimal.Decimal `json:"incomes"`
	TotalAssets       []decimal.Decimal `json:"total_assets"`
	InvestmentAccount []decimal.Decimal `json:"investment_account"`
	SavingsAccount    []decimal.Decimal `json:"savings_account"`

	InitialAssetOnly       []decimal.Decimal `json:"initial_asset_only"`
	IncomeContributionOnly []decimal.Decimal `json:"income_contribution_only"`

	// Per-account breakdown of IncomeContributionOnly.
	IncomeContributionInvestment []decimal.Decimal `json:"income_contribution_only_investment"`
	IncomeContributionSavings    []decimal.Decimal `json:"income_contribution_only_savings"`
}

// Points returns the number of data points (NumYears + 1).
func (tr *Trajectory) Points() int {
	return len(tr.TotalAssets)
}

// FinalTotalAssets returns total assets at the projection horizon.
func (tr *Trajectory) FinalTotalAssets() decimal.Decimal {
	if len(tr.TotalAssets) == 0 {
		return decimal.Zero
	}
	return tr.TotalAssets[len(tr.TotalAssets)-1]
}

// FinalInitialAssetShare returns the fraction of final total assets
// attributable to the starting capital. Zero when final assets are zero.
func (tr *Trajectory) FinalInitialAssetShare() decimal.Decimal {
	final := tr.FinalTotalAssets()
	if final.IsZero() {
		return decimal.Zero
	}
	return tr.InitialAssetOnly[len(tr.InitialAssetOnly)-1].Div(final)
}

// ScenarioResult pairs a scenario with its simulated trajectory.
type ScenarioResult struct {
	Label      string             `json:"label"`
	Parameters ScenarioParameters `json:"parameters"`
	Trajectory *Trajectory        `json:"trajectory"`
}

// ParameterDiff lists, for one scenario, the parameter values that differ
// from at least one other scenario under comparison.
type ParameterDiff struct {
	Label  string            `json:"label"`
	Fields map[string]string `json:"fields"`
}

// Crossover marks the first year in which one scenario's total assets
// overtake another's, with a linearly interpolated fraction of the year.
type Crossover struct {
	Overtaker string          `json:"overtaker"`
	Overtaken string          `json:"overtaken"`
	YearIndex int             `json:"year_index"`
	Fraction  decimal.Decimal `json:"fraction"`
	Assets    decimal.Decimal `json:"assets"`
}

// ScenarioComparison is the full multi-scenario comparison consumed by the
// presentation layer: one result per scenario, the parameters shared by all
// of them, the per-scenario differences, and any total-asset crossovers.
type ScenarioComparison struct {
	Results          []ScenarioResult  `json:"results"`
	CommonParameters map[string]string `json:"common_parameters"`
	Diffs            []ParameterDiff   `json:"diffs"`
	Crossovers       []Crossover       `json:"crossovers,omitempty"`
}
