package article

import (
	"fmt"
	"time"
)

// Article is the generated matchday newspaper piece.
type Article struct {
	LeagueID       string
	MatchdayID     string
	MatchdayNumber int
	Title          string
	Content        string
	CreatedAt      time.Time
}

func (a Article) Validate() error {
	if a.LeagueID == "" {
		return fmt.Errorf("article league id is required")
	}
	if a.MatchdayID == "" {
		return fmt.Errorf("article matchday id is required")
	}
	if a.Title == "" {
		return fmt.Errorf("article title is required")
	}
	if a.Content == "" {
		return fmt.Errorf("article content is required")
	}

	return nil
}
