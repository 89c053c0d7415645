package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
)

type MatchdayRepository struct {
	mu    sync.RWMutex
	items map[string]matchday.Matchday
}

func NewMatchdayRepository() *MatchdayRepository {
	return &MatchdayRepository{items: make(map[string]matchday.Matchday)}
}

func (r *MatchdayRepository) Create(_ context.Context, item matchday.Matchday) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneMatchday(item)
	return nil
}

func (r *MatchdayRepository) GetByID(_ context.Context, matchdayID string) (matchday.Matchday, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchdayID]
	if !ok {
		return matchday.Matchday{}, false, nil
	}

	return cloneMatchday(item), true, nil
}

func (r *MatchdayRepository) GetOpenByLeague(_ context.Context, leagueID string) (matchday.Matchday, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.LeagueID == leagueID && item.Status == matchday.StatusOpen {
			return cloneMatchday(item), true, nil
		}
	}

	return matchday.Matchday{}, false, nil
}

func (r *MatchdayRepository) LastNumberByLeague(_ context.Context, leagueID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	last := 0
	for _, item := range r.items {
		if item.LeagueID == leagueID && item.Number > last {
			last = item.Number
		}
	}

	return last, nil
}

func (r *MatchdayRepository) ListByLeague(_ context.Context, leagueID string) ([]matchday.Matchday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchday.Matchday, 0)
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, cloneMatchday(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return out, nil
}

func (r *MatchdayRepository) UpdateStatus(_ context.Context, matchdayID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchdayID]
	if !ok {
		return fmt.Errorf("matchday %s not found", matchdayID)
	}
	item.Status = status
	r.items[matchdayID] = item
	return nil
}

func (r *MatchdayRepository) UpdateSettings(_ context.Context, matchdayID string, deadlineEndAt time.Time, slotMinutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchdayID]
	if !ok {
		return fmt.Errorf("matchday %s not found", matchdayID)
	}
	item.DeadlineEndAt = &deadlineEndAt
	item.SlotMinutes = slotMinutes
	r.items[matchdayID] = item
	return nil
}

func cloneMatchday(item matchday.Matchday) matchday.Matchday {
	copied := item
	if item.DeadlineEndAt != nil {
		at := *item.DeadlineEndAt
		copied.DeadlineEndAt = &at
	}
	return copied
}
