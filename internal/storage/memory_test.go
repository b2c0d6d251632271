package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polumm/lifecalc/internal/domain"
)

func testScenario(label string, years int) *domain.Scenario {
	return &domain.Scenario{
		Label: label,
		Parameters: domain.ScenarioParameters{
			InitialAssets:        decimal.NewFromInt(10000),
			InitialIncome:        decimal.NewFromInt(50000),
			InvestmentFraction:   decimal.NewFromFloat(0.3),
			SavingsFraction:      decimal.NewFromFloat(0.2),
			ConsumptionFraction:  decimal.NewFromFloat(0.5),
			InvestmentReturnRate: decimal.NewFromFloat(0.07),
			StartAge:             30,
			NumYears:             years,
		},
	}
}

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, testScenario("base", 30)))
	assert.ErrorIs(t, store.Create(ctx, testScenario("base", 30)), ErrDuplicate)

	got, err := store.Get(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Parameters.NumYears)

	updated := testScenario("base", 40)
	require.NoError(t, store.Update(ctx, updated))
	got, err = store.Get(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, 40, got.Parameters.NumYears)

	require.NoError(t, store.Delete(ctx, "base"))
	_, err = store.Get(ctx, "base")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "base"), ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, updated), ErrNotFound)
}

func TestMemoryStore_ListOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, label := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, store.Create(ctx, testScenario(label, 10)))
	}

	scenarios, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "alpha", scenarios[0].Label)
	assert.Equal(t, "mid", scenarios[1].Label)
	assert.Equal(t, "zeta", scenarios[2].Label)
}

func TestMemoryStore_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upsert(ctx, testScenario("plan", 10)))
	require.NoError(t, store.Upsert(ctx, testScenario("plan", 25)))

	got, err := store.Get(ctx, "plan")
	require.NoError(t, err)
	assert.Equal(t, 25, got.Parameters.NumYears)

	scenarios, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, testScenario("plan", 10)))

	got, err := store.Get(ctx, "plan")
	require.NoError(t, err)
	got.Parameters.NumYears = 99

	again, err := store.Get(ctx, "plan")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Parameters.NumYears)
}

func TestDisplayLabels(t *testing.T) {
	scenarios := []domain.Scenario{
		{Label: "plan"},
		{Label: "plan"},
		{Label: "other"},
		{Label: "plan"},
	}
	assert.Equal(t, []string{"plan", "plan (2)", "other", "plan (3)"}, DisplayLabels(scenarios))
}
