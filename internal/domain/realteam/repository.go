package realteam

import "context"

// Repository exposes the real-club catalog and per-matchday top-6 picks.
// ReplaceTop6 overwrites any previous selection for the matchday.
type Repository interface {
	List(ctx context.Context) ([]RealTeam, error)
	GetByIDs(ctx context.Context, realTeamIDs []string) ([]RealTeam, error)
	ReplaceTop6(ctx context.Context, matchdayID string, entries []Top6Entry) (int, error)
	ListTop6(ctx context.Context, matchdayID string) ([]Top6Entry, error)
}
