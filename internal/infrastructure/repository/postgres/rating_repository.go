package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/rating"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) UpsertBulk(ctx context.Context, matchdayID string, items []rating.Rating) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	builder := qb.InsertInto("ratings").Columns("matchday_id", "player_id", "vote")
	for _, item := range items {
		builder.Values(matchdayID, item.PlayerID, item.Vote)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (matchday_id, player_id) DO UPDATE SET vote = EXCLUDED.vote").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build ratings upsert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("upsert ratings: %w", err)
	}

	return len(items), nil
}

func (r *RatingRepository) ListByMatchday(ctx context.Context, matchdayID string) ([]rating.Rating, error) {
	query, args, err := qb.Select("*").From("ratings").
		Where(qb.Eq("matchday_id", matchdayID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ratings query: %w", err)
	}

	var rows []ratingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	out := make([]rating.Rating, 0, len(rows))
	for _, row := range rows {
		out = append(out, ratingFromRow(row))
	}
	return out, nil
}
