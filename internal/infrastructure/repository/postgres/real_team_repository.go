package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/realteam"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type RealTeamRepository struct {
	db *sqlx.DB
}

func NewRealTeamRepository(db *sqlx.DB) *RealTeamRepository {
	return &RealTeamRepository{db: db}
}

func (r *RealTeamRepository) List(ctx context.Context) ([]realteam.RealTeam, error) {
	query, args, err := qb.Select("*").From("real_teams").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list real teams query: %w", err)
	}

	return r.selectRealTeams(ctx, query, args)
}

func (r *RealTeamRepository) GetByIDs(ctx context.Context, realTeamIDs []string) ([]realteam.RealTeam, error) {
	if len(realTeamIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(realTeamIDs))
	for _, id := range realTeamIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("real_teams").
		Where(qb.In("id", values)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get real teams query: %w", err)
	}

	return r.selectRealTeams(ctx, query, args)
}

// ReplaceTop6 overwrites the previous selection for the matchday in one
// transaction.
func (r *RealTeamRepository) ReplaceTop6(ctx context.Context, matchdayID string, entries []realteam.Top6Entry) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin top6 replace: %w", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("matchday_top6").
		Where(qb.Eq("matchday_id", matchdayID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build top6 delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, fmt.Errorf("delete top6 rows: %w", err)
	}

	if len(entries) > 0 {
		builder := qb.InsertInto("matchday_top6").Columns("matchday_id", "rank", "real_team_id")
		for _, entry := range entries {
			builder.Values(matchdayID, entry.Rank, entry.RealTeamID)
		}

		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build top6 insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return 0, fmt.Errorf("insert top6 rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit top6 replace: %w", err)
	}

	return len(entries), nil
}

func (r *RealTeamRepository) ListTop6(ctx context.Context, matchdayID string) ([]realteam.Top6Entry, error) {
	query, args, err := qb.Select("*").From("matchday_top6").
		Where(qb.Eq("matchday_id", matchdayID)).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list top6 query: %w", err)
	}

	var rows []top6TableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list top6: %w", err)
	}

	out := make([]realteam.Top6Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, top6EntryFromRow(row))
	}
	return out, nil
}

func (r *RealTeamRepository) selectRealTeams(ctx context.Context, query string, args []any) ([]realteam.RealTeam, error) {
	var rows []realTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select real teams: %w", err)
	}

	out := make([]realteam.RealTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, realTeamFromRow(row))
	}
	return out, nil
}
