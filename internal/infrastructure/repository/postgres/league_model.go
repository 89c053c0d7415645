package postgres

import (
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/league"
)

type leagueTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

type leagueInsertModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:        row.ID,
		Name:      row.Name,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
	}
}
