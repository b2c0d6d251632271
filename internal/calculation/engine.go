package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/polumm/lifecalc/internal/domain"
)

var one = decimal.NewFromInt(1)

// ProjectionEngine computes wealth trajectories from scenario parameters.
// It is stateless apart from its logger; a single engine may be shared by
// any number of goroutines.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates a projection engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (e *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ValidateParameters checks every scenario parameter against its accepted
// domain and returns an *InvalidParameterError for the first violation.
// InflationRate is deliberately unchecked: it is accepted for API stability
// and never used.
func ValidateParameters(p *domain.ScenarioParameters) error {
	minusOne := one.Neg()

	if p.NumYears <= 0 {
		return invalidParam("num_years", "must be a positive integer")
	}
	if p.InitialAssets.IsNegative() {
		return invalidParam("initial_assets", "cannot be negative")
	}
	if p.InitialIncome.IsNegative() {
		return invalidParam("initial_income", "cannot be negative")
	}
	if p.SavingsFraction.IsNegative() {
		return invalidParam("savings_fraction", "cannot be negative")
	}
	if p.InvestmentFraction.IsNegative() {
		return invalidParam("investment_fraction", "cannot be negative")
	}
	if p.ConsumptionFraction.IsNegative() {
		return invalidParam("consumption_fraction", "cannot be negative")
	}
	if p.InvestmentReturnRate.LessThan(minusOne) {
		return invalidParam("investment_return_rate", "cannot be less than -1 (-100%)")
	}
	if p.SavingsReturnRate.LessThan(minusOne) {
		return invalidParam("savings_return_rate", "cannot be less than -1 (-100%)")
	}
	if p.IncomeGrowthRate.LessThan(minusOne) {
		return invalidParam("income_growth_rate", "cannot be less than -1 (-100%)")
	}
	return nil
}

// Simulate runs the year-by-year projection and returns the full trajectory.
//
// Conventions:
//   - The trajectory has NumYears+1 points: year 0 is the starting state,
//     year NumYears the horizon.
//   - The whole of InitialAssets is seeded into the investment account at
//     year 0, so InitialAssetOnly compounds at InvestmentReturnRate alone.
//   - Year t's contribution is Incomes[t] * fraction, credited after the
//     prior balance has grown; year 0 receives no contribution.
//   - InflationRate is ignored; all series are nominal.
//
// Simulate is pure and deterministic: identical parameters yield identical
// trajectories.
func (e *ProjectionEngine) Simulate(params *domain.ScenarioParameters) (*domain.Trajectory, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	n := params.NumYears
	tr := &domain.Trajectory{
		Years:                        make([]int, n+1),
		Ages:                         make([]int, n+1),
		Incomes:                      make([]decimal.Decimal, n+1),
		TotalAssets:                  make([]decimal.Decimal, n+1),
		InvestmentAccount:            make([]decimal.Decimal, n+1),
		SavingsAccount:               make([]decimal.Decimal, n+1),
		InitialAssetOnly:             make([]decimal.Decimal, n+1),
		IncomeContributionOnly:       make([]decimal.Decimal, n+1),
		IncomeContributionInvestment: make([]decimal.Decimal, n+1),
		IncomeContributionSavings:    make([]decimal.Decimal, n+1),
	}

	investGrowth := one.Add(params.InvestmentReturnRate)
	savingsGrowth := one.Add(params.SavingsReturnRate)
	incomeGrowth := one.Add(params.IncomeGrowthRate)

	tr.Years[0] = 0
	tr.Ages[0] = params.StartAge
	tr.Incomes[0] = params.InitialIncome
	tr.InvestmentAccount[0] = params.InitialAssets
	tr.SavingsAccount[0] = decimal.Zero
	tr.TotalAssets[0] = params.InitialAssets
	tr.InitialAssetOnly[0] = params.InitialAssets
	tr.IncomeContributionInvestment[0] = decimal.Zero
	tr.IncomeContributionSavings[0] = decimal.Zero
	tr.IncomeContributionOnly[0] = decimal.Zero

	for t := 1; t <= n; t++ {
		tr.Years[t] = t
		tr.Ages[t] = params.StartAge + t

		income := tr.Incomes[t-1].Mul(incomeGrowth)
		tr.Incomes[t] = income

		investContrib := income.Mul(params.InvestmentFraction)
		saveContrib := income.Mul(params.SavingsFraction)

		tr.InvestmentAccount[t] = tr.InvestmentAccount[t-1].Mul(investGrowth).Add(investContrib)
		tr.SavingsAccount[t] = tr.SavingsAccount[t-1].Mul(savingsGrowth).Add(saveContrib)
		tr.TotalAssets[t] = tr.InvestmentAccount[t].Add(tr.SavingsAccount[t])

		// Decomposition recurrences: same form as the account recurrences,
		// seeded so they partition the total exactly.
		tr.InitialAssetOnly[t] = tr.InitialAssetOnly[t-1].Mul(investGrowth)
		tr.IncomeContributionInvestment[t] = tr.IncomeContributionInvestment[t-1].Mul(investGrowth).Add(investContrib)
		tr.IncomeContributionSavings[t] = tr.IncomeContributionSavings[t-1].Mul(savingsGrowth).Add(saveContrib)
		tr.IncomeContributionOnly[t] = tr.IncomeContributionInvestment[t].Add(tr.IncomeContributionSavings[t])
	}

	e.Logger.Debugf("simulated %d years: final total assets %s (initial capital %s, contributions %s)",
		n,
		tr.TotalAssets[n].StringFixed(2),
		tr.InitialAssetOnly[n].StringFixed(2),
		tr.IncomeContributionOnly[n].StringFixed(2))

	return tr, nil
}
