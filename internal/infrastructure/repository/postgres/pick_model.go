package postgres

import (
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/pick"
)

type pickTableModel struct {
	LeagueID    string    `db:"league_id"`
	MatchdayID  string    `db:"matchday_id"`
	TeamID      string    `db:"team_id"`
	GKPlayerID  string    `db:"gk_player_id"`
	DefPlayerID string    `db:"def_player_id"`
	MidPlayerID string    `db:"mid_player_id"`
	FwdPlayerID string    `db:"fwd_player_id"`
	SubmittedAt time.Time `db:"submitted_at"`
}

type pickInsertModel struct {
	LeagueID    string    `db:"league_id"`
	MatchdayID  string    `db:"matchday_id"`
	TeamID      string    `db:"team_id"`
	GKPlayerID  string    `db:"gk_player_id"`
	DefPlayerID string    `db:"def_player_id"`
	MidPlayerID string    `db:"mid_player_id"`
	FwdPlayerID string    `db:"fwd_player_id"`
	SubmittedAt time.Time `db:"submitted_at"`
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		LeagueID:    row.LeagueID,
		MatchdayID:  row.MatchdayID,
		TeamID:      row.TeamID,
		GKPlayerID:  row.GKPlayerID,
		DefPlayerID: row.DefPlayerID,
		MidPlayerID: row.MidPlayerID,
		FwdPlayerID: row.FwdPlayerID,
		SubmittedAt: row.SubmittedAt,
	}
}
