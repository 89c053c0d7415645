package postgres

import (
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
)

type pickScheduleTableModel struct {
	LeagueID        string     `db:"league_id"`
	MatchdayID      string     `db:"matchday_id"`
	TeamID          string     `db:"team_id"`
	TeamName        string     `db:"team_name"`
	SlotStartAt     time.Time  `db:"slot_start_at"`
	SlotEndAt       time.Time  `db:"slot_end_at"`
	SubmittedAt     *time.Time `db:"submitted_at"`
	SubmittedStatus string     `db:"submitted_status"`
}

func pickScheduleEntryFromRow(row pickScheduleTableModel) pickschedule.Entry {
	entry := pickschedule.Entry{
		LeagueID:        row.LeagueID,
		MatchdayID:      row.MatchdayID,
		TeamID:          row.TeamID,
		TeamName:        row.TeamName,
		SlotStartAt:     row.SlotStartAt,
		SlotEndAt:       row.SlotEndAt,
		SubmittedStatus: pickschedule.Status(row.SubmittedStatus),
	}
	if row.SubmittedAt != nil {
		submittedAt := *row.SubmittedAt
		entry.SubmittedAt = &submittedAt
	}
	return entry
}
