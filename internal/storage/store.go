package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/polumm/lifecalc/internal/domain"
)

var (
	// ErrNotFound is returned when no scenario exists under the given label.
	ErrNotFound = errors.New("scenario not found")
	// ErrDuplicate is returned when creating a scenario whose label is taken.
	ErrDuplicate = errors.New("scenario label already exists")
)

// Store persists named scenarios. The projection engine never touches a
// Store; it exists only for the glue layers.
type Store interface {
	Create(ctx context.Context, sc *domain.Scenario) error
	Get(ctx context.Context, label string) (*domain.Scenario, error)
	Update(ctx context.Context, sc *domain.Scenario) error
	Delete(ctx context.Context, label string) error
	// List returns all scenarios ordered by label.
	List(ctx context.Context) ([]domain.Scenario, error)
	// Upsert creates the scenario or replaces the one with the same label.
	Upsert(ctx context.Context, sc *domain.Scenario) error
}

// DisplayLabels produces a unique display label per scenario, suffixing
// repeats with a counter. Labels are unique within a single store, but a
// merged view over several sources can collide.
func DisplayLabels(scenarios []domain.Scenario) []string {
	counts := make(map[string]int, len(scenarios))
	labels := make([]string, len(scenarios))
	for i, sc := range scenarios {
		counts[sc.Label]++
		if n := counts[sc.Label]; n > 1 {
			labels[i] = fmt.Sprintf("%s (%d)", sc.Label, n)
		} else {
			labels[i] = sc.Label
		}
	}
	return labels
}
