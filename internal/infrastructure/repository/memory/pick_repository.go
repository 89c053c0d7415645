package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fantachat/fantachat-api/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) Create(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey(item.LeagueID, item.MatchdayID, item.TeamID)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("pick already exists for team %s", item.TeamID)
	}
	r.items[key] = item
	return nil
}

func (r *PickRepository) GetByTeam(_ context.Context, leagueID, matchdayID, teamID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pickKey(leagueID, matchdayID, teamID)]
	if !ok {
		return pick.Pick{}, false, nil
	}

	return item, true, nil
}

func (r *PickRepository) ListByMatchday(_ context.Context, leagueID, matchdayID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.items {
		if item.LeagueID == leagueID && item.MatchdayID == matchdayID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })

	return out, nil
}

func pickKey(leagueID, matchdayID, teamID string) string {
	return leagueID + "::" + matchdayID + "::" + teamID
}
