package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/domain"
	"github.com/polumm/lifecalc/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewHandler(store, calculation.NewProjectionEngine(), logger)
	r := mux.NewRouter()
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func scenarioBody(label string, investReturn float64) []byte {
	sc := domain.Scenario{
		Label: label,
		Parameters: domain.ScenarioParameters{
			InitialAssets:        decimal.NewFromInt(10000),
			InitialIncome:        decimal.NewFromInt(50000),
			IncomeGrowthRate:     decimal.NewFromFloat(0.02),
			SavingsFraction:      decimal.NewFromFloat(0.1),
			InvestmentFraction:   decimal.NewFromFloat(0.2),
			ConsumptionFraction:  decimal.NewFromFloat(0.7),
			InvestmentReturnRate: decimal.NewFromFloat(investReturn),
			SavingsReturnRate:    decimal.NewFromFloat(0.02),
			StartAge:             30,
			NumYears:             2,
		},
	}
	data, _ := json.Marshal(sc)
	return data
}

func doRequest(t *testing.T, method, url string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestScenarioCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, "POST", srv.URL+"/scenarios", scenarioBody("base", 0.07))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "POST", srv.URL+"/scenarios", scenarioBody("base", 0.07))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(t, "GET", srv.URL+"/scenarios/base", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got scenarioResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "base", got.Scenario.Label)
	assert.Empty(t, got.Warnings)

	resp = doRequest(t, "PUT", srv.URL+"/scenarios/base", scenarioBody("base", 0.05))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, "GET", srv.URL+"/scenarios", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed listResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed.Scenarios, 1)
	assert.True(t, listed.Scenarios[0].Parameters.InvestmentReturnRate.Equal(decimal.NewFromFloat(0.05)))
	assert.Equal(t, []string{"base"}, listed.DisplayLabels)

	resp = doRequest(t, "DELETE", srv.URL+"/scenarios/base", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, "GET", srv.URL+"/scenarios/base", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateScenario_RejectsInvalidParameters(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, "POST", srv.URL+"/scenarios", scenarioBody("bad", -1.5))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "investment_return_rate")
}

func TestSimulate(t *testing.T) {
	srv, _ := newTestServer(t)

	var sc domain.Scenario
	require.NoError(t, json.Unmarshal(scenarioBody("", 0.07), &sc))
	params, _ := json.Marshal(sc.Parameters)

	resp := doRequest(t, "POST", srv.URL+"/simulate", params)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got simulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotNil(t, got.Trajectory)
	require.Equal(t, 3, got.Trajectory.Points())
	assert.Empty(t, got.Warnings)

	// The decomposition must survive the JSON round trip intact.
	for i, total := range got.Trajectory.TotalAssets {
		sum := got.Trajectory.InitialAssetOnly[i].Add(got.Trajectory.IncomeContributionOnly[i])
		assert.True(t, sum.Equal(total), "year %d partition broken", i)
	}
}

func TestSimulate_FractionWarning(t *testing.T) {
	srv, _ := newTestServer(t)

	var sc domain.Scenario
	require.NoError(t, json.Unmarshal(scenarioBody("", 0.07), &sc))
	sc.Parameters.ConsumptionFraction = decimal.NewFromFloat(0.5)
	params, _ := json.Marshal(sc.Parameters)

	resp := doRequest(t, "POST", srv.URL+"/simulate", params)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got simulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "0.8")
}

func TestCompare(t *testing.T) {
	srv, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doRequest(t, "POST", srv.URL+"/scenarios", scenarioBody("aggressive", 0.09)).StatusCode)
	require.Equal(t, http.StatusCreated,
		doRequest(t, "POST", srv.URL+"/scenarios", scenarioBody("cautious", 0.03)).StatusCode)

	resp := doRequest(t, "GET", srv.URL+"/compare", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comparison domain.ScenarioComparison
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&comparison))
	require.Len(t, comparison.Results, 2)
	assert.Equal(t, "aggressive", comparison.Results[0].Label)
	assert.Contains(t, comparison.Diffs[0].Fields, "investment_return_rate")
	assert.NotContains(t, comparison.CommonParameters, "investment_return_rate")
}
