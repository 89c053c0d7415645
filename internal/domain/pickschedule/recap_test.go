package pickschedule

import (
	"strings"
	"testing"
	"time"
)

func TestRenderRecap_OrdersBySlotStart(t *testing.T) {
	loc := testLocation(t)
	base := time.Date(2026, time.September, 4, 14, 0, 0, 0, loc)

	entries := []Entry{
		{TeamName: "Delta", SlotStartAt: base.Add(270 * time.Minute), SlotEndAt: base.Add(360 * time.Minute)},
		{TeamName: "Alfa", SlotStartAt: base, SlotEndAt: base.Add(90 * time.Minute)},
		{TeamName: "Beta", SlotStartAt: base.Add(90 * time.Minute), SlotEndAt: base.Add(180 * time.Minute)},
	}

	got := RenderRecap(3, entries)
	want := strings.Join([]string{
		"Giornata 3 — consegna rose",
		"• Alfa: 04/09 14:00 → 15:30",
		"• Beta: 04/09 15:30 → 17:00",
		"• Delta: 04/09 18:30 → 20:00",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected recap:\n got: %q\nwant: %q", got, want)
	}

	if again := RenderRecap(3, entries); again != got {
		t.Fatalf("recap is not deterministic")
	}
}

func TestRenderRecap_CrossMidnightWindowShowsFullEnd(t *testing.T) {
	loc := testLocation(t)
	start := time.Date(2026, time.September, 4, 9, 30, 0, 0, loc)

	entries := []Entry{
		{TeamName: "Alfa", SlotStartAt: start, SlotEndAt: start.Add(26 * time.Hour)},
	}

	got := RenderRecap(1, entries)
	if !strings.Contains(got, "04/09 09:30 → 05/09 11:30") {
		t.Fatalf("cross-day window must show the full end date: %q", got)
	}
}

func TestRenderRecap_EmptyScheduleReturnsMarker(t *testing.T) {
	if got := RenderRecap(1, nil); got != EmptyRecapMarker {
		t.Fatalf("unexpected empty recap: %q", got)
	}
}
