package team

import "fmt"

// Team is one fantasy squad inside a league. Teams are the unit the
// pick scheduler assigns submission slots to.
type Team struct {
	ID       string
	LeagueID string
	Name     string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
