package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/polumm/lifecalc/internal/domain"
)

// FindCrossover scans two trajectories for the first year in which the
// initially poorer scenario's total assets reach the initially richer one's.
// The crossover point within that year is linearly interpolated. Returns nil
// when the two scenarios start equal or never cross within the shorter
// horizon.
func FindCrossover(a, b *domain.ScenarioResult) *domain.Crossover {
	points := a.Trajectory.Points()
	if b.Trajectory.Points() < points {
		points = b.Trajectory.Points()
	}
	if points == 0 {
		return nil
	}

	// Orient so that "leader" starts ahead and "chaser" may overtake.
	leader, chaser := a, b
	startDiff := a.Trajectory.TotalAssets[0].Sub(b.Trajectory.TotalAssets[0])
	if startDiff.IsZero() {
		return nil
	}
	if startDiff.IsNegative() {
		leader, chaser = b, a
	}

	prevDiff := leader.Trajectory.TotalAssets[0].Sub(chaser.Trajectory.TotalAssets[0])
	for t := 1; t < points; t++ {
		currDiff := leader.Trajectory.TotalAssets[t].Sub(chaser.Trajectory.TotalAssets[t])
		if currDiff.LessThanOrEqual(decimal.Zero) {
			// prevDiff > 0 >= currDiff: crossover inside (t-1, t].
			fraction := decimal.NewFromInt(1)
			span := prevDiff.Sub(currDiff)
			if span.IsPositive() {
				fraction = prevDiff.Div(span)
			}
			assets := interpolate(chaser.Trajectory.TotalAssets[t-1], chaser.Trajectory.TotalAssets[t], fraction)
			return &domain.Crossover{
				Overtaker: chaser.Label,
				Overtaken: leader.Label,
				YearIndex: t,
				Fraction:  fraction,
				Assets:    assets,
			}
		}
		prevDiff = currDiff
	}
	return nil
}

func interpolate(from, to, fraction decimal.Decimal) decimal.Decimal {
	return from.Add(to.Sub(from).Mul(fraction))
}
