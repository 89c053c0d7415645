package membership

import (
	"context"
	"time"
)

// Repository persists memberships, invite codes and the per-user
// active-league preference.
type Repository interface {
	Create(ctx context.Context, item Membership) error
	GetByUserAndLeague(ctx context.Context, userID, leagueID string) (Membership, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)

	CreateInvites(ctx context.Context, invites []Invite) error
	GetInviteByCode(ctx context.Context, code string) (Invite, bool, error)
	MarkInviteClaimed(ctx context.Context, code, userID string, claimedAt time.Time) error

	SetActiveLeague(ctx context.Context, userID, leagueID string) error
	GetActiveLeague(ctx context.Context, userID string) (string, bool, error)
}
