package matchday

import (
	"fmt"
	"time"
)

const (
	StatusOpen   = "open"
	StatusLocked = "locked"
)

// DefaultSlotMinutes is the submission window applied when the admin
// opens a matchday without picking an explicit slot length.
const DefaultSlotMinutes = 90

// Matchday is one round of competition within one league. A league has
// at most one open matchday at a time.
type Matchday struct {
	ID            string
	LeagueID      string
	Number        int
	Status        string
	DeadlineEndAt *time.Time
	SlotMinutes   int
	CreatedAt     time.Time
}

func (m Matchday) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("matchday id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("matchday league id is required")
	}
	if m.Number < 1 {
		return fmt.Errorf("matchday number must be >= 1, got %d", m.Number)
	}
	if m.Status != StatusOpen && m.Status != StatusLocked {
		return fmt.Errorf("invalid matchday status %q", m.Status)
	}
	if m.SlotMinutes <= 0 {
		return fmt.Errorf("matchday slot_minutes must be > 0, got %d", m.SlotMinutes)
	}

	return nil
}

func (m Matchday) IsOpen() bool {
	return m.Status == StatusOpen
}
