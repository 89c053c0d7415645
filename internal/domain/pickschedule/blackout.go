package pickschedule

import "time"

// Blackout is a daily window during which no slot may start or run.
// The window spans midnight: it opens at StartHour:StartMinute and
// closes at EndHour:EndMinute on the following day. Both boundaries
// follow the half-open convention, so a slot may end exactly when the
// blackout opens and start exactly when it closes.
type Blackout struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// DefaultBlackout returns the nightly 22:00-09:30 window.
func DefaultBlackout() Blackout {
	return Blackout{StartHour: 22, EndHour: 9, EndMinute: 30}
}

// occurrence returns the blackout interval anchored on the given civil day.
func (b Blackout) occurrence(day time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, dom := day.Date()
	start := time.Date(year, month, dom, b.StartHour, b.StartMinute, 0, 0, loc)
	end := time.Date(year, month, dom+1, b.EndHour, b.EndMinute, 0, 0, loc)
	return start, end
}

// latestIntersecting finds the most recent blackout occurrence that
// overlaps the candidate interval [start, end) and returns its opening
// time. Occurrences are checked day by day from the candidate's end
// back to the day before its start, so a candidate longer than a day
// still resolves against the latest collision first.
func (b Blackout) latestIntersecting(start, end time.Time, loc *time.Location) (time.Time, bool) {
	endLocal := end.In(loc)
	startLocal := start.In(loc)

	day := time.Date(endLocal.Year(), endLocal.Month(), endLocal.Day(), 0, 0, 0, 0, loc)
	floor := time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)

	for !day.Before(floor) {
		occStart, occEnd := b.occurrence(day, loc)
		if occStart.Before(end) && start.Before(occEnd) {
			return occStart, true
		}
		day = day.AddDate(0, 0, -1)
	}

	return time.Time{}, false
}
