package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type MatchdayRepository struct {
	db *sqlx.DB
}

func NewMatchdayRepository(db *sqlx.DB) *MatchdayRepository {
	return &MatchdayRepository{db: db}
}

func (r *MatchdayRepository) Create(ctx context.Context, item matchday.Matchday) error {
	query, args, err := qb.InsertInto("matchdays").
		Columns("id", "league_id", "number", "status", "deadline_end_at", "slot_minutes", "created_at").
		Values(item.ID, item.LeagueID, item.Number, item.Status, item.DeadlineEndAt, item.SlotMinutes, item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build matchday insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert matchday: %w", err)
	}

	return nil
}

func (r *MatchdayRepository) GetByID(ctx context.Context, matchdayID string) (matchday.Matchday, bool, error) {
	query, args, err := matchdayBaseSelectBuilder().
		Where(qb.Eq("id", matchdayID)).
		ToSQL()
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("build get matchday query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *MatchdayRepository) GetOpenByLeague(ctx context.Context, leagueID string) (matchday.Matchday, bool, error) {
	query, args, err := matchdayBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("status", matchday.StatusOpen),
		).
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("build get open matchday query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *MatchdayRepository) LastNumberByLeague(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.Select("COALESCE(MAX(number), 0)").From("matchdays").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build last matchday number query: %w", err)
	}

	var last int
	if err := r.db.GetContext(ctx, &last, query, args...); err != nil {
		return 0, fmt.Errorf("get last matchday number: %w", err)
	}

	return last, nil
}

func (r *MatchdayRepository) ListByLeague(ctx context.Context, leagueID string) ([]matchday.Matchday, error) {
	query, args, err := matchdayBaseSelectBuilder().
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchdays query: %w", err)
	}

	var rows []matchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchdays: %w", err)
	}

	out := make([]matchday.Matchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchdayFromRow(row))
	}
	return out, nil
}

func (r *MatchdayRepository) UpdateStatus(ctx context.Context, matchdayID, status string) error {
	query, args, err := qb.Update("matchdays").
		Set("status", status).
		Where(qb.Eq("id", matchdayID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matchday status query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update matchday status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update matchday status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("matchday %s not found", matchdayID)
	}

	return nil
}

func (r *MatchdayRepository) UpdateSettings(ctx context.Context, matchdayID string, deadlineEndAt time.Time, slotMinutes int) error {
	query, args, err := qb.Update("matchdays").
		Set("deadline_end_at", deadlineEndAt).
		Set("slot_minutes", slotMinutes).
		Where(qb.Eq("id", matchdayID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matchday settings query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update matchday settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update matchday settings rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("matchday %s not found", matchdayID)
	}

	return nil
}

func (r *MatchdayRepository) getOne(ctx context.Context, query string, args []any) (matchday.Matchday, bool, error) {
	var row matchdayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchday.Matchday{}, false, nil
		}
		return matchday.Matchday{}, false, fmt.Errorf("get matchday: %w", err)
	}

	return matchdayFromRow(row), true, nil
}

func matchdayBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matchdays")
}
