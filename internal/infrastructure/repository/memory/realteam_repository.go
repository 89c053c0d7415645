package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fantachat/fantachat-api/internal/domain/realteam"
)

type RealTeamRepository struct {
	mu    sync.RWMutex
	items map[string]realteam.RealTeam
	top6  map[string][]realteam.Top6Entry
}

func NewRealTeamRepository(clubs []realteam.RealTeam) *RealTeamRepository {
	items := make(map[string]realteam.RealTeam, len(clubs))
	for _, club := range clubs {
		items[club.ID] = club
	}
	return &RealTeamRepository{
		items: items,
		top6:  make(map[string][]realteam.Top6Entry),
	}
}

func (r *RealTeamRepository) List(_ context.Context) ([]realteam.RealTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]realteam.RealTeam, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *RealTeamRepository) GetByIDs(_ context.Context, realTeamIDs []string) ([]realteam.RealTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]realteam.RealTeam, 0, len(realTeamIDs))
	seen := make(map[string]struct{}, len(realTeamIDs))
	for _, id := range realTeamIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *RealTeamRepository) ReplaceTop6(_ context.Context, matchdayID string, entries []realteam.Top6Entry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.top6[matchdayID] = append([]realteam.Top6Entry(nil), entries...)
	return len(entries), nil
}

func (r *RealTeamRepository) ListTop6(_ context.Context, matchdayID string) ([]realteam.Top6Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]realteam.Top6Entry(nil), r.top6[matchdayID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out, nil
}
