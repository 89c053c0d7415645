package postgres

import "github.com/fantachat/fantachat-api/internal/domain/team"

type teamTableModel struct {
	ID       string `db:"id"`
	LeagueID string `db:"league_id"`
	Name     string `db:"name"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
	}
}
