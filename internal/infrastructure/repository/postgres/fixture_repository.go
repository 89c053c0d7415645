package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/fixture"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

// ReplaceForMatchday overwrites the previous round for the matchday in
// one transaction.
func (r *FixtureRepository) ReplaceForMatchday(ctx context.Context, matchdayID string, items []fixture.Fixture) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin fixtures replace: %w", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("matchday_fixtures").
		Where(qb.Eq("matchday_id", matchdayID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build fixtures delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, fmt.Errorf("delete fixture rows: %w", err)
	}

	if len(items) > 0 {
		builder := qb.InsertInto("matchday_fixtures").Columns("matchday_id", "position", "home_club_id", "away_club_id")
		for _, item := range items {
			builder.Values(matchdayID, item.Position, item.HomeClubID, item.AwayClubID)
		}

		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build fixtures insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return 0, fmt.Errorf("insert fixture rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit fixtures replace: %w", err)
	}

	return len(items), nil
}

func (r *FixtureRepository) ListByMatchday(ctx context.Context, matchdayID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("matchday_fixtures").
		Where(qb.Eq("matchday_id", matchdayID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}
