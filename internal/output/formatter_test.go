package output

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/domain"
)

func sampleComparison(t *testing.T) *domain.ScenarioComparison {
	t.Helper()
	params := domain.ScenarioParameters{
		InitialAssets:        decimal.NewFromInt(10000),
		InitialIncome:        decimal.NewFromInt(50000),
		IncomeGrowthRate:     decimal.NewFromFloat(0.02),
		SavingsFraction:      decimal.NewFromFloat(0.1),
		InvestmentFraction:   decimal.NewFromFloat(0.2),
		ConsumptionFraction:  decimal.NewFromFloat(0.7),
		InvestmentReturnRate: decimal.NewFromFloat(0.07),
		SavingsReturnRate:    decimal.NewFromFloat(0.02),
		StartAge:             30,
		NumYears:             3,
	}
	slower := params
	slower.InvestmentReturnRate = decimal.NewFromFloat(0.03)

	comparison, err := calculation.NewProjectionEngine().RunScenarios(context.Background(), []domain.Scenario{
		{Label: "base", Parameters: params},
		{Label: "slower", Parameters: slower},
	})
	require.NoError(t, err)
	return comparison
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("TABLE").Name())
	assert.Equal(t, "console", GetFormatterByName(" text ").Name())
	assert.Equal(t, "csv", GetFormatterByName("csv-yearly").Name())
	assert.Equal(t, "json", GetFormatterByName("json-pretty").Name())
	assert.Nil(t, GetFormatterByName("html"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json"}, AvailableFormatterNames())
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleComparison(t))
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "base:")
	assert.Contains(t, text, "slower:")
	assert.Contains(t, text, "Common among scenarios:")
	assert.Contains(t, text, "investment_return_rate=7.0%")
	// The inert inflation rate never shows up in the comparison view.
	assert.NotContains(t, text, "inflation_rate")
}

func TestCSVFormatter(t *testing.T) {
	comparison := sampleComparison(t)
	data, err := CSVFormatter{}.Format(comparison)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus (NumYears+1) rows per scenario.
	assert.Len(t, lines, 1+2*4)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Year,Age,Income,TotalAssets"))
	assert.True(t, strings.HasPrefix(lines[1], "base,0,30,50000.00,10000.00"))
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleComparison(t))
	require.NoError(t, err)

	var decoded domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "base", decoded.Results[0].Label)
	assert.True(t, decoded.Results[0].Trajectory.TotalAssets[0].Equal(decimal.NewFromInt(10000)))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "7.0%", FormatPercent(decimal.NewFromFloat(0.07)))
	assert.Equal(t, "-3.1%", FormatPercent(decimal.NewFromFloat(-0.031)))
}
