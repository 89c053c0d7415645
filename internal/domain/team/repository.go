package team

import "context"

// Repository exposes team persistence operations. ListByLeague must
// return teams ordered by name ascending with id as tiebreak, because
// that ordering decides slot assignment.
type Repository interface {
	CreateBatch(ctx context.Context, items []Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
}
