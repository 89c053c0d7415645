package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type PickScheduleRepository struct {
	db *sqlx.DB
}

func NewPickScheduleRepository(db *sqlx.DB) *PickScheduleRepository {
	return &PickScheduleRepository{db: db}
}

// ReplaceForMatchday swaps the whole schedule generation inside one
// transaction, so readers never see rows from two generations mixed.
func (r *PickScheduleRepository) ReplaceForMatchday(ctx context.Context, leagueID, matchdayID string, slots []pickschedule.Slot) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin schedule replace: %w", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("pick_schedule").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build schedule delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, fmt.Errorf("delete schedule rows: %w", err)
	}

	if len(slots) > 0 {
		builder := qb.InsertInto("pick_schedule").
			Columns("league_id", "matchday_id", "team_id", "team_name", "slot_start_at", "slot_end_at", "submitted_status")
		for _, slot := range slots {
			builder.Values(leagueID, matchdayID, slot.TeamID, slot.TeamName, slot.StartAt, slot.EndAt, string(pickschedule.StatusNone))
		}

		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build schedule insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return 0, fmt.Errorf("insert schedule rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit schedule replace: %w", err)
	}

	return len(slots), nil
}

func (r *PickScheduleRepository) ListByMatchday(ctx context.Context, leagueID, matchdayID string) ([]pickschedule.Entry, error) {
	query, args, err := pickScheduleBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
		).
		OrderBy("slot_start_at", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list schedule query: %w", err)
	}

	var rows []pickScheduleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}

	out := make([]pickschedule.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickScheduleEntryFromRow(row))
	}
	return out, nil
}

func (r *PickScheduleRepository) GetByTeam(ctx context.Context, leagueID, matchdayID, teamID string) (pickschedule.Entry, bool, error) {
	query, args, err := pickScheduleBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return pickschedule.Entry{}, false, fmt.Errorf("build get schedule entry query: %w", err)
	}

	var row pickScheduleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pickschedule.Entry{}, false, nil
		}
		return pickschedule.Entry{}, false, fmt.Errorf("get schedule entry: %w", err)
	}

	return pickScheduleEntryFromRow(row), true, nil
}

func (r *PickScheduleRepository) RecordSubmission(ctx context.Context, leagueID, matchdayID, teamID string, submittedAt time.Time, status pickschedule.Status) error {
	query, args, err := qb.Update("pick_schedule").
		Set("submitted_at", submittedAt).
		Set("submitted_status", string(status)).
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record submission query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record submission rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no schedule entry for team %s on matchday %s", teamID, matchdayID)
	}

	return nil
}

func pickScheduleBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("pick_schedule")
}
