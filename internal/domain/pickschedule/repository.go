package pickschedule

import (
	"context"
	"time"
)

// Repository persists pick schedule rows. ReplaceForMatchday must be an
// atomic full overwrite: readers never observe a mix of two generations.
type Repository interface {
	ReplaceForMatchday(ctx context.Context, leagueID, matchdayID string, slots []Slot) (int, error)
	ListByMatchday(ctx context.Context, leagueID, matchdayID string) ([]Entry, error)
	GetByTeam(ctx context.Context, leagueID, matchdayID, teamID string) (Entry, bool, error)
	RecordSubmission(ctx context.Context, leagueID, matchdayID, teamID string, submittedAt time.Time, status Status) error
}
