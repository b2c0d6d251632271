package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/polumm/lifecalc/internal/domain"
)

// CSVFormatter emits one row per scenario-year with every trajectory series.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "Age", "Income",
		"TotalAssets", "InvestmentAccount", "SavingsAccount",
		"InitialAssetOnly", "IncomeContributionOnly",
		"IncomeContributionInvestment", "IncomeContributionSavings",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range results.Results {
		tr := res.Trajectory
		for i := 0; i < tr.Points(); i++ {
			row := []string{
				res.Label,
				strconv.Itoa(tr.Years[i]),
				strconv.Itoa(tr.Ages[i]),
				tr.Incomes[i].StringFixed(2),
				tr.TotalAssets[i].StringFixed(2),
				tr.InvestmentAccount[i].StringFixed(2),
				tr.SavingsAccount[i].StringFixed(2),
				tr.InitialAssetOnly[i].StringFixed(2),
				tr.IncomeContributionOnly[i].StringFixed(2),
				tr.IncomeContributionInvestment[i].StringFixed(2),
				tr.IncomeContributionSavings[i].StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
