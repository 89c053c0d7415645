package article

import "context"

// Repository persists generated matchday articles. Upsert overwrites the
// previous article for the same matchday, so regeneration is idempotent.
type Repository interface {
	Upsert(ctx context.Context, item Article) error
	GetByMatchday(ctx context.Context, leagueID, matchdayID string) (Article, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Article, error)
}
