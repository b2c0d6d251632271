package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/polumm/lifecalc/internal/domain"
)

// MemoryStore is an in-memory Store, used by tests and store-less runs.
// Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	scenarios map[string]domain.Scenario
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenarios: make(map[string]domain.Scenario)}
}

func (s *MemoryStore) Create(_ context.Context, sc *domain.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scenarios[sc.Label]; exists {
		return ErrDuplicate
	}
	s.scenarios[sc.Label] = *sc
	return nil
}

func (s *MemoryStore) Get(_ context.Context, label string) (*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, exists := s.scenarios[label]
	if !exists {
		return nil, ErrNotFound
	}
	return &sc, nil
}

func (s *MemoryStore) Update(_ context.Context, sc *domain.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scenarios[sc.Label]; !exists {
		return ErrNotFound
	}
	s.scenarios[sc.Label] = *sc
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scenarios[label]; !exists {
		return ErrNotFound
	}
	delete(s.scenarios, label)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scenarios := make([]domain.Scenario, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		scenarios = append(scenarios, sc)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Label < scenarios[j].Label })
	return scenarios, nil
}

func (s *MemoryStore) Upsert(_ context.Context, sc *domain.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios[sc.Label] = *sc
	return nil
}
