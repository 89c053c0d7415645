package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/player"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListActiveByRole(ctx context.Context, role string) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.Eq("role", player.NormalizeRole(role)),
			qb.Eq("active", true),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by role query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		values = append(values, id)
	}

	query, args, err := playerBaseSelectBuilder().
		Where(qb.In("id", values)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("players")
}
