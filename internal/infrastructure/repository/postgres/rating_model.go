package postgres

import "github.com/fantachat/fantachat-api/internal/domain/rating"

type ratingTableModel struct {
	MatchdayID string  `db:"matchday_id"`
	PlayerID   string  `db:"player_id"`
	Vote       float64 `db:"vote"`
}

func ratingFromRow(row ratingTableModel) rating.Rating {
	return rating.Rating{
		MatchdayID: row.MatchdayID,
		PlayerID:   row.PlayerID,
		Vote:       row.Vote,
	}
}
