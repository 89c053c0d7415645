package fixture

import "fmt"

// Fixture is one admin-entered real match of a matchday round, ranked
// by position on the entry screen.
type Fixture struct {
	MatchdayID string
	Position   int
	HomeClubID string
	AwayClubID string
}

func (f Fixture) Validate() error {
	if f.MatchdayID == "" {
		return fmt.Errorf("fixture matchday id is required")
	}
	if f.Position < 1 {
		return fmt.Errorf("fixture position must be >= 1, got %d", f.Position)
	}
	if f.HomeClubID == "" || f.AwayClubID == "" {
		return fmt.Errorf("fixture home and away club ids are required")
	}
	if f.HomeClubID == f.AwayClubID {
		return fmt.Errorf("fixture club %s cannot play itself", f.HomeClubID)
	}

	return nil
}
