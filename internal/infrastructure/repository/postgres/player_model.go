package postgres

import "github.com/fantachat/fantachat-api/internal/domain/player"

type playerTableModel struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Role       string `db:"role"`
	RealTeamID string `db:"real_team_id"`
	Active     bool   `db:"active"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:         row.ID,
		Name:       row.Name,
		Role:       row.Role,
		RealTeamID: row.RealTeamID,
		Active:     row.Active,
	}
}
