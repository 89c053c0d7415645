package membership

import "time"

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Membership binds a user to one team of one league with a role.
type Membership struct {
	UserID   string
	LeagueID string
	TeamID   string
	Role     string
	JoinedAt time.Time
}

func (m Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// Invite is a single-use code that claims a specific team seat.
type Invite struct {
	Code      string
	LeagueID  string
	TeamID    string
	ClaimedBy string
	ClaimedAt *time.Time
}

func (i Invite) Claimed() bool {
	return i.ClaimedAt != nil
}
