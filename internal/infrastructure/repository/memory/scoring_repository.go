package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fantachat/fantachat-api/internal/domain/scoring"
)

type ScoringRepository struct {
	mu    sync.RWMutex
	items map[string][]scoring.TeamScore
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{items: make(map[string][]scoring.TeamScore)}
}

func (r *ScoringRepository) ReplaceForMatchday(_ context.Context, leagueID, matchdayID string, rows []scoring.TeamScore) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[scoreKey(leagueID, matchdayID)] = append([]scoring.TeamScore(nil), rows...)
	return len(rows), nil
}

func (r *ScoringRepository) ListByMatchday(_ context.Context, leagueID, matchdayID string) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.TeamScore(nil), r.items[scoreKey(leagueID, matchdayID)]...), nil
}

func (r *ScoringRepository) ListFinalByLeague(_ context.Context, leagueID string) ([]scoring.TeamScore, error) {
	return r.listByLeague(leagueID, true)
}

func (r *ScoringRepository) ListByLeague(_ context.Context, leagueID string) ([]scoring.TeamScore, error) {
	return r.listByLeague(leagueID, false)
}

func (r *ScoringRepository) listByLeague(leagueID string, finalOnly bool) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.TeamScore, 0)
	for _, rows := range r.items {
		for _, row := range rows {
			if row.LeagueID != leagueID {
				continue
			}
			if finalOnly && !row.IsFinal {
				continue
			}
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchdayNumber != out[j].MatchdayNumber {
			return out[i].MatchdayNumber < out[j].MatchdayNumber
		}
		return out[i].TeamName < out[j].TeamName
	})

	return out, nil
}

func scoreKey(leagueID, matchdayID string) string {
	return leagueID + "::" + matchdayID
}
