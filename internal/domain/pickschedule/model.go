package pickschedule

import "time"

// Status classifies a team's submission timestamp against its slot.
type Status string

const (
	StatusNone   Status = "none"
	StatusEarly  Status = "early"
	StatusWithin Status = "within"
	StatusLate   Status = "late"
)

// Slot is one team's submission window, half-open on the right.
type Slot struct {
	TeamID   string
	TeamName string
	StartAt  time.Time
	EndAt    time.Time
}

// Entry is one persisted schedule row for a (league, matchday, team).
type Entry struct {
	LeagueID        string
	MatchdayID      string
	TeamID          string
	TeamName        string
	SlotStartAt     time.Time
	SlotEndAt       time.Time
	SubmittedAt     *time.Time
	SubmittedStatus Status
}

// Classify derives the submission status from the slot window and the
// actual submission timestamp. The slot end is exclusive: a submission
// at exactly SlotEndAt is late.
func Classify(slotStartAt, slotEndAt time.Time, submittedAt *time.Time) Status {
	switch {
	case submittedAt == nil:
		return StatusNone
	case submittedAt.Before(slotStartAt):
		return StatusEarly
	case submittedAt.Before(slotEndAt):
		return StatusWithin
	default:
		return StatusLate
	}
}
