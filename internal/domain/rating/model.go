package rating

import "fmt"

const (
	MinVote = 0.0
	MaxVote = 10.0
)

// Rating is the admin-entered vote for one player on one matchday.
type Rating struct {
	MatchdayID string
	PlayerID   string
	Vote       float64
}

func (r Rating) Validate() error {
	if r.MatchdayID == "" {
		return fmt.Errorf("rating matchday id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("rating player id is required")
	}
	if r.Vote < MinVote || r.Vote > MaxVote {
		return fmt.Errorf("rating vote must be in %.0f..%.0f, got %g", MinVote, MaxVote, r.Vote)
	}

	return nil
}
