package pickschedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

var ErrEmptyRecap = errors.New("recap rendered blank for a non-empty schedule")

// EmptyRecapMarker is returned for a schedule with zero rows so callers
// can tell an intentionally empty schedule apart from a rendering failure.
const EmptyRecapMarker = "— nessuna squadra in calendario —"

const recapTimeLayout = "02/01 15:04"

// RenderRecap produces the plain-text, chat-paste-ready schedule summary,
// one line per team ordered by slot start ascending.
func RenderRecap(matchdayNumber int, entries []Entry) string {
	if len(entries) == 0 {
		return EmptyRecapMarker
	}

	rows := append([]Entry(nil), entries...)
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].SlotStartAt.Equal(rows[j].SlotStartAt) {
			return rows[i].SlotStartAt.Before(rows[j].SlotStartAt)
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "Giornata %d — consegna rose\n", matchdayNumber)
	for _, row := range rows {
		fmt.Fprintf(buf, "• %s: %s → %s\n", row.TeamName, row.SlotStartAt.Format(recapTimeLayout), formatRecapEnd(row.SlotStartAt, row.SlotEndAt))
	}

	return strings.TrimRight(buf.String(), "\n")
}

func formatRecapEnd(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return end.Format("15:04")
	}
	return end.Format(recapTimeLayout)
}
