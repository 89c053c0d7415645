package fixture

import "context"

// Repository stores the real-match round of a matchday. Writes replace
// the whole round.
type Repository interface {
	ReplaceForMatchday(ctx context.Context, matchdayID string, items []Fixture) (int, error)
	ListByMatchday(ctx context.Context, matchdayID string) ([]Fixture, error)
}
