package postgres

import (
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/membership"
)

type membershipTableModel struct {
	UserID   string    `db:"user_id"`
	LeagueID string    `db:"league_id"`
	TeamID   string    `db:"team_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

type inviteTableModel struct {
	Code      string     `db:"code"`
	LeagueID  string     `db:"league_id"`
	TeamID    string     `db:"team_id"`
	ClaimedBy *string    `db:"claimed_by"`
	ClaimedAt *time.Time `db:"claimed_at"`
}

func membershipFromRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		UserID:   row.UserID,
		LeagueID: row.LeagueID,
		TeamID:   row.TeamID,
		Role:     row.Role,
		JoinedAt: row.JoinedAt,
	}
}

func inviteFromRow(row inviteTableModel) membership.Invite {
	item := membership.Invite{
		Code:     row.Code,
		LeagueID: row.LeagueID,
		TeamID:   row.TeamID,
	}
	if row.ClaimedBy != nil {
		item.ClaimedBy = *row.ClaimedBy
	}
	if row.ClaimedAt != nil {
		claimedAt := *row.ClaimedAt
		item.ClaimedAt = &claimedAt
	}
	return item
}
