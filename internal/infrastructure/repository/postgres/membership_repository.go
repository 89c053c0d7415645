package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/membership"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, item membership.Membership) error {
	query, args, err := qb.InsertInto("memberships").
		Columns("user_id", "league_id", "team_id", "role", "joined_at").
		Values(item.UserID, item.LeagueID, item.TeamID, item.Role, item.JoinedAt).
		Suffix("ON CONFLICT (user_id, league_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build membership insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert membership rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("membership for user %s in league %s already exists", item.UserID, item.LeagueID)
	}

	return nil
}

func (r *MembershipRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID string) (membership.Membership, bool, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_id", leagueID),
		).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]membership.Membership, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(qb.Eq("user_id", userID)).
		OrderBy("league_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *MembershipRepository) CreateInvites(ctx context.Context, invites []membership.Invite) error {
	if len(invites) == 0 {
		return nil
	}

	builder := qb.InsertInto("invites").Columns("code", "league_id", "team_id")
	for _, invite := range invites {
		builder.Values(invite.Code, invite.LeagueID, invite.TeamID)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build invites insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert invites: %w", err)
	}

	return nil
}

func (r *MembershipRepository) GetInviteByCode(ctx context.Context, code string) (membership.Invite, bool, error) {
	query, args, err := qb.Select("*").From("invites").
		Where(qb.Eq("code", code)).
		ToSQL()
	if err != nil {
		return membership.Invite{}, false, fmt.Errorf("build get invite query: %w", err)
	}

	var row inviteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Invite{}, false, nil
		}
		return membership.Invite{}, false, fmt.Errorf("get invite: %w", err)
	}

	return inviteFromRow(row), true, nil
}

// MarkInviteClaimed is conditional on the invite still being open, so
// two concurrent claims cannot both win.
func (r *MembershipRepository) MarkInviteClaimed(ctx context.Context, code, userID string, claimedAt time.Time) error {
	query, args, err := qb.Update("invites").
		Set("claimed_by", userID).
		Set("claimed_at", claimedAt).
		Where(
			qb.Eq("code", code),
			qb.IsNull("claimed_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build claim invite query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("claim invite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim invite rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("invite %s is unknown or already claimed", code)
	}

	return nil
}

func (r *MembershipRepository) SetActiveLeague(ctx context.Context, userID, leagueID string) error {
	query, args, err := qb.InsertInto("active_leagues").
		Columns("user_id", "league_id").
		Values(userID, leagueID).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET league_id = EXCLUDED.league_id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set active league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set active league: %w", err)
	}

	return nil
}

func (r *MembershipRepository) GetActiveLeague(ctx context.Context, userID string) (string, bool, error) {
	query, args, err := qb.Select("league_id").From("active_leagues").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get active league query: %w", err)
	}

	var leagueID string
	if err := r.db.GetContext(ctx, &leagueID, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get active league: %w", err)
	}

	return leagueID, true, nil
}
