package postgres

import (
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
)

type matchdayTableModel struct {
	ID            string     `db:"id"`
	LeagueID      string     `db:"league_id"`
	Number        int        `db:"number"`
	Status        string     `db:"status"`
	DeadlineEndAt *time.Time `db:"deadline_end_at"`
	SlotMinutes   int        `db:"slot_minutes"`
	CreatedAt     time.Time  `db:"created_at"`
}

func matchdayFromRow(row matchdayTableModel) matchday.Matchday {
	item := matchday.Matchday{
		ID:          row.ID,
		LeagueID:    row.LeagueID,
		Number:      row.Number,
		Status:      row.Status,
		SlotMinutes: row.SlotMinutes,
		CreatedAt:   row.CreatedAt,
	}
	if row.DeadlineEndAt != nil {
		deadline := *row.DeadlineEndAt
		item.DeadlineEndAt = &deadline
	}
	return item
}
