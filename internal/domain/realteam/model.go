package realteam

import "fmt"

// Top6Size is the number of ranked clubs the admin must pick per matchday.
const Top6Size = 6

// RealTeam is a real-world club referenced by players.
type RealTeam struct {
	ID   string
	Name string
}

// Top6Entry ranks one club in a matchday's top-6 selection. Picks from
// top-6 clubs are limited to one per fantasy team.
type Top6Entry struct {
	MatchdayID string
	Rank       int
	RealTeamID string
}

func (e Top6Entry) Validate() error {
	if e.MatchdayID == "" {
		return fmt.Errorf("top6 matchday id is required")
	}
	if e.Rank < 1 || e.Rank > Top6Size {
		return fmt.Errorf("top6 rank must be in 1..%d, got %d", Top6Size, e.Rank)
	}
	if e.RealTeamID == "" {
		return fmt.Errorf("top6 real team id is required")
	}

	return nil
}
