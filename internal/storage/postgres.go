package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/polumm/lifecalc/internal/domain"
)

const uniqueViolation = "23505"

const scenarioColumns = `label, initial_assets, initial_income, income_growth_rate,
	savings_fraction, investment_fraction, consumption_fraction,
	investment_return_rate, savings_return_rate, inflation_rate,
	start_age, num_years`

// PostgresStore persists scenarios in a Postgres table keyed by a unique
// label.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore initializes a store over an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the scenarios table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS scenarios (
			id SERIAL PRIMARY KEY,
			label TEXT UNIQUE NOT NULL,
			initial_assets DOUBLE PRECISION NOT NULL,
			initial_income DOUBLE PRECISION NOT NULL,
			income_growth_rate DOUBLE PRECISION NOT NULL,
			savings_fraction DOUBLE PRECISION NOT NULL,
			investment_fraction DOUBLE PRECISION NOT NULL,
			consumption_fraction DOUBLE PRECISION NOT NULL,
			investment_return_rate DOUBLE PRECISION NOT NULL,
			savings_return_rate DOUBLE PRECISION NOT NULL,
			inflation_rate DOUBLE PRECISION NOT NULL,
			start_age INTEGER NOT NULL,
			num_years INTEGER NOT NULL
		)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create scenarios table: %w", err)
	}
	return nil
}

// Create inserts a new scenario. Returns ErrDuplicate when the label is
// already taken.
func (s *PostgresStore) Create(ctx context.Context, sc *domain.Scenario) error {
	query := `INSERT INTO scenarios (` + scenarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, query, scenarioArgs(sc)...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	return nil
}

// Get retrieves a scenario by label.
func (s *PostgresStore) Get(ctx context.Context, label string) (*domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE label = $1`
	sc, err := scanScenario(s.db.QueryRowContext(ctx, query, label))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return sc, nil
}

// Update replaces the stored parameters for the scenario's label.
func (s *PostgresStore) Update(ctx context.Context, sc *domain.Scenario) error {
	query := `UPDATE scenarios SET
			initial_assets = $2, initial_income = $3, income_growth_rate = $4,
			savings_fraction = $5, investment_fraction = $6, consumption_fraction = $7,
			investment_return_rate = $8, savings_return_rate = $9, inflation_rate = $10,
			start_age = $11, num_years = $12
		WHERE label = $1`
	res, err := s.db.ExecContext(ctx, query, scenarioArgs(sc)...)
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the scenario with the given label.
func (s *PostgresStore) Delete(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE label = $1`, label)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all scenarios ordered by label.
func (s *PostgresStore) List(ctx context.Context) ([]domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios ORDER BY label ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		scenarios = append(scenarios, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return scenarios, nil
}

// Upsert creates the scenario or replaces the one sharing its label.
func (s *PostgresStore) Upsert(ctx context.Context, sc *domain.Scenario) error {
	query := `INSERT INTO scenarios (` + scenarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (label) DO UPDATE SET
			initial_assets = EXCLUDED.initial_assets,
			initial_income = EXCLUDED.initial_income,
			income_growth_rate = EXCLUDED.income_growth_rate,
			savings_fraction = EXCLUDED.savings_fraction,
			investment_fraction = EXCLUDED.investment_fraction,
			consumption_fraction = EXCLUDED.consumption_fraction,
			investment_return_rate = EXCLUDED.investment_return_rate,
			savings_return_rate = EXCLUDED.savings_return_rate,
			inflation_rate = EXCLUDED.inflation_rate,
			start_age = EXCLUDED.start_age,
			num_years = EXCLUDED.num_years`
	if _, err := s.db.ExecContext(ctx, query, scenarioArgs(sc)...); err != nil {
		return fmt.Errorf("failed to upsert scenario: %w", err)
	}
	return nil
}

func scenarioArgs(sc *domain.Scenario) []any {
	p := sc.Parameters
	return []any{
		sc.Label,
		p.InitialAssets, p.InitialIncome, p.IncomeGrowthRate,
		p.SavingsFraction, p.InvestmentFraction, p.ConsumptionFraction,
		p.InvestmentReturnRate, p.SavingsReturnRate, p.InflationRate,
		p.StartAge, p.NumYears,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var sc domain.Scenario
	p := &sc.Parameters
	err := row.Scan(
		&sc.Label,
		&p.InitialAssets, &p.InitialIncome, &p.IncomeGrowthRate,
		&p.SavingsFraction, &p.InvestmentFraction, &p.ConsumptionFraction,
		&p.InvestmentReturnRate, &p.SavingsReturnRate, &p.InflationRate,
		&p.StartAge, &p.NumYears,
	)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}
