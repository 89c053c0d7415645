package postgres

import "github.com/fantachat/fantachat-api/internal/domain/scoring"

type teamScoreTableModel struct {
	LeagueID       string  `db:"league_id"`
	MatchdayID     string  `db:"matchday_id"`
	MatchdayNumber int     `db:"matchday_number"`
	TeamID         string  `db:"team_id"`
	TeamName       string  `db:"team_name"`
	TotalScore     float64 `db:"total_score"`
	IsFinal        bool    `db:"is_final"`
}

func teamScoreFromRow(row teamScoreTableModel) scoring.TeamScore {
	return scoring.TeamScore{
		LeagueID:       row.LeagueID,
		MatchdayID:     row.MatchdayID,
		MatchdayNumber: row.MatchdayNumber,
		TeamID:         row.TeamID,
		TeamName:       row.TeamName,
		TotalScore:     row.TotalScore,
		IsFinal:        row.IsFinal,
	}
}
