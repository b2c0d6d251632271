package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/domain"
)

// ScenarioFile is the on-disk YAML layout for a set of named scenarios.
type ScenarioFile struct {
	Scenarios []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario file.
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("scenario file validation failed: %w", err)
	}

	return &file, nil
}

// ValidateScenarioFile validates the loaded scenario set: at least one
// scenario, unique non-empty labels, and every parameter inside its
// accepted domain. Allocation fractions summing to something other than 1
// are allowed; callers that care can check FractionsSumToOne themselves.
func (ip *InputParser) ValidateScenarioFile(file *ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]struct{}, len(file.Scenarios))
	for i, sc := range file.Scenarios {
		if sc.Label == "" {
			return fmt.Errorf("scenario %d: label is required", i)
		}
		if _, dup := seen[sc.Label]; dup {
			return fmt.Errorf("scenario %d: duplicate label %q", i, sc.Label)
		}
		seen[sc.Label] = struct{}{}

		if err := calculation.ValidateParameters(&file.Scenarios[i].Parameters); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Label, err)
		}
	}
	return nil
}

// CreateExampleScenarioFile returns a ready-to-edit pair of scenarios using
// the application's historical form defaults.
func (ip *InputParser) CreateExampleScenarioFile() *ScenarioFile {
	base := domain.ScenarioParameters{
		InitialAssets:        decimal.NewFromInt(10000),
		InitialIncome:        decimal.NewFromInt(50000),
		IncomeGrowthRate:     decimal.NewFromFloat(0.03),
		SavingsFraction:      decimal.NewFromFloat(0.2),
		InvestmentFraction:   decimal.NewFromFloat(0.3),
		ConsumptionFraction:  decimal.NewFromFloat(0.5),
		InvestmentReturnRate: decimal.NewFromFloat(0.07),
		SavingsReturnRate:    decimal.NewFromFloat(0.02),
		InflationRate:        decimal.NewFromFloat(0.02),
		StartAge:             30,
		NumYears:             30,
	}

	frugal := base
	frugal.ConsumptionFraction = decimal.NewFromFloat(0.4)
	frugal.InvestmentFraction = decimal.NewFromFloat(0.4)

	return &ScenarioFile{
		Scenarios: []domain.Scenario{
			{Label: "My Scenario", Parameters: base},
			{Label: "Frugal", Parameters: frugal},
		},
	}
}
