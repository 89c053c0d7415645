package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
)

type PickScheduleRepository struct {
	mu    sync.RWMutex
	items map[string][]pickschedule.Entry
}

func NewPickScheduleRepository() *PickScheduleRepository {
	return &PickScheduleRepository{items: make(map[string][]pickschedule.Entry)}
}

func (r *PickScheduleRepository) ReplaceForMatchday(_ context.Context, leagueID, matchdayID string, slots []pickschedule.Slot) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]pickschedule.Entry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, pickschedule.Entry{
			LeagueID:        leagueID,
			MatchdayID:      matchdayID,
			TeamID:          slot.TeamID,
			TeamName:        slot.TeamName,
			SlotStartAt:     slot.StartAt,
			SlotEndAt:       slot.EndAt,
			SubmittedStatus: pickschedule.StatusNone,
		})
	}
	r.items[scheduleKey(leagueID, matchdayID)] = entries

	return len(entries), nil
}

func (r *PickScheduleRepository) ListByMatchday(_ context.Context, leagueID, matchdayID string) ([]pickschedule.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.items[scheduleKey(leagueID, matchdayID)]
	out := make([]pickschedule.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, cloneEntry(entry))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SlotStartAt.Before(out[j].SlotStartAt) })

	return out, nil
}

func (r *PickScheduleRepository) GetByTeam(_ context.Context, leagueID, matchdayID, teamID string) (pickschedule.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.items[scheduleKey(leagueID, matchdayID)] {
		if entry.TeamID == teamID {
			return cloneEntry(entry), true, nil
		}
	}

	return pickschedule.Entry{}, false, nil
}

func (r *PickScheduleRepository) RecordSubmission(_ context.Context, leagueID, matchdayID, teamID string, submittedAt time.Time, status pickschedule.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scheduleKey(leagueID, matchdayID)
	entries := r.items[key]
	for i, entry := range entries {
		if entry.TeamID == teamID {
			at := submittedAt
			entries[i].SubmittedAt = &at
			entries[i].SubmittedStatus = status
			r.items[key] = entries
			return nil
		}
	}

	return fmt.Errorf("schedule entry not found for team %s", teamID)
}

func scheduleKey(leagueID, matchdayID string) string {
	return leagueID + "::" + matchdayID
}

func cloneEntry(entry pickschedule.Entry) pickschedule.Entry {
	copied := entry
	if entry.SubmittedAt != nil {
		at := *entry.SubmittedAt
		copied.SubmittedAt = &at
	}
	return copied
}
