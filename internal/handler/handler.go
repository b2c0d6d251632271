package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/domain"
	"github.com/polumm/lifecalc/internal/storage"
)

// Handler exposes scenario CRUD and simulation over HTTP.
type Handler struct {
	store  storage.Store
	engine *calculation.ProjectionEngine
	logger *logrus.Logger
}

// NewHandler creates a handler over the given store.
func NewHandler(store storage.Store, engine *calculation.ProjectionEngine, logger *logrus.Logger) *Handler {
	return &Handler{store: store, engine: engine, logger: logger}
}

// Register attaches all routes to the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/scenarios", h.ListScenarios).Methods("GET")
	r.HandleFunc("/scenarios", h.CreateScenario).Methods("POST")
	r.HandleFunc("/scenarios/{label}", h.GetScenario).Methods("GET")
	r.HandleFunc("/scenarios/{label}", h.UpdateScenario).Methods("PUT")
	r.HandleFunc("/scenarios/{label}", h.DeleteScenario).Methods("DELETE")
	r.HandleFunc("/simulate", h.Simulate).Methods("POST")
	r.HandleFunc("/compare", h.Compare).Methods("GET")
}

type scenarioResponse struct {
	Scenario *domain.Scenario `json:"scenario"`
	Warnings []string         `json:"warnings,omitempty"`
}

type simulateResponse struct {
	Trajectory *domain.Trajectory `json:"trajectory"`
	Warnings   []string           `json:"warnings,omitempty"`
}

type listResponse struct {
	Scenarios     []domain.Scenario `json:"scenarios"`
	DisplayLabels []string          `json:"display_labels"`
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.store.List(r.Context())
	if err != nil {
		h.serverError(w, "list scenarios", err)
		return
	}
	if scenarios == nil {
		scenarios = []domain.Scenario{}
	}
	h.writeJSON(w, http.StatusOK, listResponse{
		Scenarios:     scenarios,
		DisplayLabels: storage.DisplayLabels(scenarios),
	})
}

func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.decodeScenario(w, r)
	if !ok {
		return
	}
	if err := h.store.Create(r.Context(), sc); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			h.writeError(w, http.StatusConflict, fmt.Sprintf("scenario %q already exists", sc.Label))
			return
		}
		h.serverError(w, "create scenario", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, scenarioResponse{Scenario: sc, Warnings: fractionWarnings(&sc.Parameters)})
}

func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	label := mux.Vars(r)["label"]
	sc, err := h.store.Get(r.Context(), label)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", label))
			return
		}
		h.serverError(w, "get scenario", err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenarioResponse{Scenario: sc})
}

func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	label := mux.Vars(r)["label"]
	sc, ok := h.decodeScenario(w, r)
	if !ok {
		return
	}
	if sc.Label != "" && sc.Label != label {
		h.writeError(w, http.StatusBadRequest, "label in body does not match URL")
		return
	}
	sc.Label = label
	if err := h.store.Update(r.Context(), sc); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", label))
			return
		}
		h.serverError(w, "update scenario", err)
		return
	}
	h.writeJSON(w, http.StatusOK, scenarioResponse{Scenario: sc, Warnings: fractionWarnings(&sc.Parameters)})
}

func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	label := mux.Vars(r)["label"]
	if err := h.store.Delete(r.Context(), label); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", label))
			return
		}
		h.serverError(w, "delete scenario", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Simulate runs a one-off projection without touching the store.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var params domain.ScenarioParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	tr, err := h.engine.Simulate(&params)
	if err != nil {
		var invalid *calculation.InvalidParameterError
		if errors.As(err, &invalid) {
			h.writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		h.serverError(w, "simulate", err)
		return
	}
	h.writeJSON(w, http.StatusOK, simulateResponse{Trajectory: tr, Warnings: fractionWarnings(&params)})
}

// Compare simulates every stored scenario and returns the full comparison.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.store.List(r.Context())
	if err != nil {
		h.serverError(w, "list scenarios", err)
		return
	}
	comparison, err := h.engine.RunScenarios(r.Context(), scenarios)
	if err != nil {
		var invalid *calculation.InvalidParameterError
		if errors.As(err, &invalid) {
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.serverError(w, "compare scenarios", err)
		return
	}
	h.writeJSON(w, http.StatusOK, comparison)
}

func (h *Handler) decodeScenario(w http.ResponseWriter, r *http.Request) (*domain.Scenario, bool) {
	var sc domain.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}
	if err := calculation.ValidateParameters(&sc.Parameters); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &sc, true
}

// fractionWarnings reports an allocation split not summing to 1. The model
// accepts such splits and never normalizes them, so this is advisory only.
func fractionWarnings(p *domain.ScenarioParameters) []string {
	if p.FractionsSumToOne() {
		return nil
	}
	return []string{fmt.Sprintf(
		"allocation fractions sum to %s, not 1; the residual is neither saved nor invested",
		p.FractionSum().String())}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Error("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.WithError(err).Errorf("%s failed", op)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}
