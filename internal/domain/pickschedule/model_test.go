package pickschedule

import (
	"testing"
	"time"
)

func TestClassify_Boundaries(t *testing.T) {
	start := time.Date(2026, time.September, 4, 18, 30, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	at := func(ts time.Time) *time.Time { return &ts }

	cases := []struct {
		name        string
		submittedAt *time.Time
		want        Status
	}{
		{"nil is none", nil, StatusNone},
		{"one millisecond before start is early", at(start.Add(-time.Millisecond)), StatusEarly},
		{"exactly at start is within", at(start), StatusWithin},
		{"one millisecond before end is within", at(end.Add(-time.Millisecond)), StatusWithin},
		{"exactly at end is late", at(end), StatusLate},
		{"after end is late", at(end.Add(time.Hour)), StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(start, end, tc.submittedAt); got != tc.want {
				t.Fatalf("unexpected status: got=%s want=%s", got, tc.want)
			}
		})
	}
}
