package pick

import "context"

// Repository persists submitted picks. Create must refuse a second pick
// for the same (league, matchday, team).
type Repository interface {
	Create(ctx context.Context, item Pick) error
	GetByTeam(ctx context.Context, leagueID, matchdayID, teamID string) (Pick, bool, error)
	ListByMatchday(ctx context.Context, leagueID, matchdayID string) ([]Pick, error)
}
