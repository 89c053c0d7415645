package rating

import "context"

// Repository persists matchday ratings.
type Repository interface {
	UpsertBulk(ctx context.Context, matchdayID string, items []Rating) (int, error)
	ListByMatchday(ctx context.Context, matchdayID string) ([]Rating, error)
}
