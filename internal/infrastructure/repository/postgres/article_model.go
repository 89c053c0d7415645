package postgres

import (
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/article"
)

type articleTableModel struct {
	LeagueID       string    `db:"league_id"`
	MatchdayID     string    `db:"matchday_id"`
	MatchdayNumber int       `db:"matchday_number"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

type articleInsertModel struct {
	LeagueID       string    `db:"league_id"`
	MatchdayID     string    `db:"matchday_id"`
	MatchdayNumber int       `db:"matchday_number"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

func articleFromRow(row articleTableModel) article.Article {
	return article.Article{
		LeagueID:       row.LeagueID,
		MatchdayID:     row.MatchdayID,
		MatchdayNumber: row.MatchdayNumber,
		Title:          row.Title,
		Content:        row.Content,
		CreatedAt:      row.CreatedAt,
	}
}
