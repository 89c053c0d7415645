package matchday

import (
	"context"
	"time"
)

// Repository exposes matchday persistence operations.
type Repository interface {
	Create(ctx context.Context, item Matchday) error
	GetByID(ctx context.Context, matchdayID string) (Matchday, bool, error)
	GetOpenByLeague(ctx context.Context, leagueID string) (Matchday, bool, error)
	LastNumberByLeague(ctx context.Context, leagueID string) (int, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Matchday, error)
	UpdateStatus(ctx context.Context, matchdayID, status string) error
	UpdateSettings(ctx context.Context, matchdayID string, deadlineEndAt time.Time, slotMinutes int) error
}
