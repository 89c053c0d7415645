package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/team"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateBatch(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("teams").Columns("id", "league_id", "name")
	for _, item := range items {
		builder.Values(item.ID, item.LeagueID, item.Name)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build teams insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert teams: %w", err)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

// ListByLeague orders by name then id; the slot generator relies on
// this ordering to assign submission windows.
func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func teamBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("teams")
}
