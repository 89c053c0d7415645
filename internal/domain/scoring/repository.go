package scoring

import "context"

// Repository persists matchday score snapshots. ReplaceForMatchday is a
// full overwrite of the matchday's rows, mirroring the schedule table's
// replace-all discipline.
type Repository interface {
	ReplaceForMatchday(ctx context.Context, leagueID, matchdayID string, rows []TeamScore) (int, error)
	ListByMatchday(ctx context.Context, leagueID, matchdayID string) ([]TeamScore, error)
	ListFinalByLeague(ctx context.Context, leagueID string) ([]TeamScore, error)
	ListByLeague(ctx context.Context, leagueID string) ([]TeamScore, error)
}
