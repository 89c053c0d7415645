package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/scoring"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// ReplaceForMatchday overwrites the matchday's snapshot rows in one
// transaction, same discipline as the schedule table.
func (r *ScoringRepository) ReplaceForMatchday(ctx context.Context, leagueID, matchdayID string, rows []scoring.TeamScore) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin scores replace: %w", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("matchday_scores").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build scores delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, fmt.Errorf("delete score rows: %w", err)
	}

	if len(rows) > 0 {
		builder := qb.InsertInto("matchday_scores").
			Columns("league_id", "matchday_id", "matchday_number", "team_id", "team_name", "total_score", "is_final")
		for _, row := range rows {
			builder.Values(leagueID, matchdayID, row.MatchdayNumber, row.TeamID, row.TeamName, row.TotalScore, row.IsFinal)
		}

		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build scores insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return 0, fmt.Errorf("insert score rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit scores replace: %w", err)
	}

	return len(rows), nil
}

func (r *ScoringRepository) ListByMatchday(ctx context.Context, leagueID, matchdayID string) ([]scoring.TeamScore, error) {
	query, args, err := teamScoreBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
		).
		OrderBy("team_name", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchday scores query: %w", err)
	}

	return r.selectScores(ctx, query, args)
}

func (r *ScoringRepository) ListFinalByLeague(ctx context.Context, leagueID string) ([]scoring.TeamScore, error) {
	query, args, err := teamScoreBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("is_final", true),
		).
		OrderBy("matchday_number", "team_name", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list final scores query: %w", err)
	}

	return r.selectScores(ctx, query, args)
}

func (r *ScoringRepository) ListByLeague(ctx context.Context, leagueID string) ([]scoring.TeamScore, error) {
	query, args, err := teamScoreBaseSelectBuilder().
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("matchday_number", "team_name", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league scores query: %w", err)
	}

	return r.selectScores(ctx, query, args)
}

func (r *ScoringRepository) selectScores(ctx context.Context, query string, args []any) ([]scoring.TeamScore, error) {
	var rows []teamScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scores: %w", err)
	}

	out := make([]scoring.TeamScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamScoreFromRow(row))
	}
	return out, nil
}

func teamScoreBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matchday_scores")
}
