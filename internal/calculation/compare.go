package calculation

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/polumm/lifecalc/internal/domain"
)

// hundred is used when rendering rate parameters as percentages.
var hundred = decimal.NewFromInt(100)

// RunScenarios simulates every scenario and assembles the full comparison:
// per-scenario trajectories, the parameters all scenarios share, the
// per-scenario differences, and total-asset crossovers between scenario
// pairs.
func (e *ProjectionEngine) RunScenarios(ctx context.Context, scenarios []domain.Scenario) (*domain.ScenarioComparison, error) {
	results := make([]domain.ScenarioResult, len(scenarios))
	for i, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr, err := e.Simulate(&sc.Parameters)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Label, err)
		}
		results[i] = domain.ScenarioResult{
			Label:      sc.Label,
			Parameters: sc.Parameters,
			Trajectory: tr,
		}
	}

	common, diffs := CompareParameters(scenarios)

	comparison := &domain.ScenarioComparison{
		Results:          results,
		CommonParameters: common,
		Diffs:            diffs,
	}

	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if cross := FindCrossover(&results[i], &results[j]); cross != nil {
				comparison.Crossovers = append(comparison.Crossovers, *cross)
			}
		}
	}

	return comparison, nil
}

// parameterField is one renderable scenario parameter.
type parameterField struct {
	Key   string
	Value string
}

// parameterFields renders every parameter to a stable key/value list.
// Rate and fraction parameters are rendered as percentages so that two
// decimals representing the same rate compare equal regardless of exponent.
func parameterFields(p *domain.ScenarioParameters) []parameterField {
	pct := func(d decimal.Decimal) string {
		return d.Mul(hundred).StringFixed(1) + "%"
	}
	return []parameterField{
		{"initial_assets", p.InitialAssets.String()},
		{"initial_income", p.InitialIncome.String()},
		{"income_growth_rate", pct(p.IncomeGrowthRate)},
		{"savings_fraction", pct(p.SavingsFraction)},
		{"investment_fraction", pct(p.InvestmentFraction)},
		{"consumption_fraction", pct(p.ConsumptionFraction)},
		{"investment_return_rate", pct(p.InvestmentReturnRate)},
		{"savings_return_rate", pct(p.SavingsReturnRate)},
		{"inflation_rate", pct(p.InflationRate)},
		{"start_age", strconv.Itoa(p.StartAge)},
		{"num_years", strconv.Itoa(p.NumYears)},
	}
}

// ParameterFieldOrder returns the canonical display order of parameter keys.
func ParameterFieldOrder() []string {
	var empty domain.ScenarioParameters
	fields := parameterFields(&empty)
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// CompareParameters splits scenario parameters into the set shared by every
// scenario and, per scenario, the fields that differ somewhere. The label is
// never part of the comparison.
func CompareParameters(scenarios []domain.Scenario) (map[string]string, []domain.ParameterDiff) {
	if len(scenarios) == 0 {
		return map[string]string{}, nil
	}

	rendered := make([][]parameterField, len(scenarios))
	for i := range scenarios {
		rendered[i] = parameterFields(&scenarios[i].Parameters)
	}

	common := map[string]string{}
	for col, field := range rendered[0] {
		shared := true
		for _, fields := range rendered[1:] {
			if fields[col].Value != field.Value {
				shared = false
				break
			}
		}
		if shared {
			common[field.Key] = field.Value
		}
	}

	diffs := make([]domain.ParameterDiff, len(scenarios))
	for i, sc := range scenarios {
		diff := domain.ParameterDiff{Label: sc.Label, Fields: map[string]string{}}
		for _, field := range rendered[i] {
			if _, ok := common[field.Key]; !ok {
				diff.Fields[field.Key] = field.Value
			}
		}
		diffs[i] = diff
	}

	return common, diffs
}
