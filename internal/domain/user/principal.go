package user

// Principal is the request-scoped identity resolved from the bearer
// token plus the caller's league context. It is passed explicitly into
// operations instead of living in ambient state.
type Principal struct {
	UserID   string
	LeagueID string
	TeamID   string
	Role     string
}

func (p Principal) HasLeagueContext() bool {
	return p.LeagueID != "" && p.TeamID != ""
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}
