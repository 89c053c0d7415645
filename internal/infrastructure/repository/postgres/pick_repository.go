package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/pick"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// Create refuses a second pick for the same team and matchday. The
// conflict check happens in the database, not in the service, so two
// racing submissions cannot both land.
func (r *PickRepository) Create(ctx context.Context, item pick.Pick) error {
	insertModel := pickInsertModel{
		LeagueID:    item.LeagueID,
		MatchdayID:  item.MatchdayID,
		TeamID:      item.TeamID,
		GKPlayerID:  item.GKPlayerID,
		DefPlayerID: item.DefPlayerID,
		MidPlayerID: item.MidPlayerID,
		FwdPlayerID: item.FwdPlayerID,
		SubmittedAt: item.SubmittedAt,
	}

	query, args, err := qb.InsertModel("picks", insertModel, "ON CONFLICT (league_id, matchday_id, team_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build pick insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert pick rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: pick for team %s on matchday %s", pick.ErrAlreadySubmitted, item.TeamID, item.MatchdayID)
	}

	return nil
}

func (r *PickRepository) GetByTeam(ctx context.Context, leagueID, matchdayID, teamID string) (pick.Pick, bool, error) {
	query, args, err := pickBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}

	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListByMatchday(ctx context.Context, leagueID, matchdayID string) ([]pick.Pick, error) {
	query, args, err := pickBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
		).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func pickBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("picks")
}
