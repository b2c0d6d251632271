package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioParameters is the complete set of inputs for one wealth projection.
// All rates are annual fractions (0.07 = 7%). The three allocation fractions
// describe how each year's income is split; they are not required to sum to 1,
// and any unallocated residual is simply not tracked as an asset addition.
type ScenarioParameters struct {
	InitialAssets        decimal.Decimal `json:"initial_assets" yaml:"initial_assets"`
	InitialIncome        decimal.Decimal `json:"initial_income" yaml:"initial_income"`
	IncomeGrowthRate     decimal.Decimal `json:"income_growth_rate" yaml:"income_growth_rate"`
	SavingsFraction      decimal.Decimal `json:"savings_fraction" yaml:"savings_fraction"`
	InvestmentFraction   decimal.Decimal `json:"investment_fraction" yaml:"investment_fraction"`
	ConsumptionFraction  decimal.Decimal `json:"consumption_fraction" yaml:"consumption_fraction"`
	InvestmentReturnRate decimal.Decimal `json:"investment_return_rate" yaml:"investment_return_rate"`
	SavingsReturnRate    decimal.Decimal `json:"savings_return_rate" yaml:"savings_return_rate"`

	// InflationRate is accepted for API stability but never applied; the
	// projection is nominal-only.
	InflationRate decimal.Decimal `json:"inflation_rate" yaml:"inflation_rate"`

	StartAge int `json:"start_age" yaml:"start_age"`
	NumYears int `json:"num_years" yaml:"num_years"`
}

// Scenario is a named parameter set.
type Scenario struct {
	Label      string             `json:"label" yaml:"label"`
	Parameters ScenarioParameters `json:"parameters" yaml:"parameters"`
}

// FractionSum returns savings + investment + consumption fractions.
func (p ScenarioParameters) FractionSum() decimal.Decimal {
	return p.SavingsFraction.Add(p.InvestmentFraction).Add(p.ConsumptionFraction)
}

// FractionsSumToOne reports whether the three allocation fractions sum to 1
// within a small tolerance. A false result is informational only; the model
// runs either way and never normalizes.
func (p ScenarioParameters) FractionsSumToOne() bool {
	tolerance := decimal.New(1, -6)
	return p.FractionSum().Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(tolerance)
}
