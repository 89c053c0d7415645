package pick

import (
	"errors"
	"time"
)

// Validation failures surfaced to the submitting player. The wording
// mirrors the backend error codes the mobile client matches on.
var (
	ErrAlreadySubmitted   = errors.New("ALREADY_SUBMITTED")
	ErrPlayerAlreadyTaken = errors.New("PLAYER_ALREADY_TAKEN")
	ErrDuplicateRealTeam  = errors.New("DUPLICATE_REAL_TEAM")
	ErrTooManyTop6        = errors.New("TOO_MANY_TOP6")
	ErrWrongRole          = errors.New("ROLE_ERROR")
	ErrMatchdayLocked     = errors.New("MATCHDAY_LOCKED")
)

// Pick is one team's submitted four-player lineup for a matchday.
type Pick struct {
	LeagueID    string
	MatchdayID  string
	TeamID      string
	GKPlayerID  string
	DefPlayerID string
	MidPlayerID string
	FwdPlayerID string
	SubmittedAt time.Time
}

// PlayerIDs returns the four picked players in GK-DEF-MID-FWD order.
func (p Pick) PlayerIDs() []string {
	return []string{p.GKPlayerID, p.DefPlayerID, p.MidPlayerID, p.FwdPlayerID}
}
