package pickschedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidDeadline      = errors.New("invalid deadline")
	ErrInvalidSlotDuration  = errors.New("invalid slot duration")
	ErrBlackoutUnresolvable = errors.New("blackout shift did not converge")
)

// maxBlackoutShifts bounds the backward walk per slot. Every shift moves
// the candidate at least one blackout occurrence earlier, so hitting the
// bound means the slot can never fit between two occurrences.
const maxBlackoutShifts = 512

// TeamSlotInput identifies one team to schedule.
type TeamSlotInput struct {
	TeamID   string
	TeamName string
}

// OrderTeams returns the deterministic assignment order: display name
// ascending, team id as tiebreak. The last team in this order receives
// the slot ending at the deadline.
func OrderTeams(teams []TeamSlotInput) []TeamSlotInput {
	ordered := append([]TeamSlotInput(nil), teams...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TeamName != ordered[j].TeamName {
			return ordered[i].TeamName < ordered[j].TeamName
		}
		return ordered[i].TeamID < ordered[j].TeamID
	})
	return ordered
}

// GenerateSlots partitions the window before deadlineEndAt into one slot
// of slotMinutes per team, walking backward from the deadline. A candidate
// interval that overlaps a blackout occurrence is pushed earlier so that
// it ends exactly when that occurrence opens, then re-checked; the rest of
// the chain follows, so the schedule stays contiguous except across the
// gaps the blackout forces.
//
// An empty team list is a valid degenerate input and yields zero slots;
// rejecting it is left to the caller.
func GenerateSlots(deadlineEndAt time.Time, slotMinutes int, teams []TeamSlotInput, blackout Blackout, loc *time.Location) ([]Slot, error) {
	if deadlineEndAt.IsZero() {
		return nil, fmt.Errorf("%w: deadline is not set", ErrInvalidDeadline)
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot_minutes must be > 0, got %d", ErrInvalidSlotDuration, slotMinutes)
	}
	if loc == nil {
		loc = time.UTC
	}

	ordered := OrderTeams(teams)
	slotDuration := time.Duration(slotMinutes) * time.Minute

	out := make([]Slot, len(ordered))
	end := deadlineEndAt.In(loc)
	for i := len(ordered) - 1; i >= 0; i-- {
		start := end.Add(-slotDuration)

		shifts := 0
		for {
			occStart, ok := blackout.latestIntersecting(start, end, loc)
			if !ok {
				break
			}
			shifts++
			if shifts > maxBlackoutShifts {
				return nil, fmt.Errorf("%w: slot of %d minutes cannot fit outside the blackout window", ErrBlackoutUnresolvable, slotMinutes)
			}
			end = occStart
			start = end.Add(-slotDuration)
		}

		out[i] = Slot{
			TeamID:   ordered[i].TeamID,
			TeamName: ordered[i].TeamName,
			StartAt:  start,
			EndAt:    end,
		}
		end = start
	}

	return out, nil
}
