package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fantachat/fantachat-api/internal/domain/fixture"
)

type FixtureRepository struct {
	mu    sync.RWMutex
	items map[string][]fixture.Fixture
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{items: make(map[string][]fixture.Fixture)}
}

func (r *FixtureRepository) ReplaceForMatchday(_ context.Context, matchdayID string, items []fixture.Fixture) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[matchdayID] = append([]fixture.Fixture(nil), items...)
	return len(items), nil
}

func (r *FixtureRepository) ListByMatchday(_ context.Context, matchdayID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]fixture.Fixture(nil), r.items[matchdayID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}
