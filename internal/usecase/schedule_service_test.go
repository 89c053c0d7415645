package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
	"github.com/fantachat/fantachat-api/internal/domain/team"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func newScheduleFixture(t *testing.T, deadline *time.Time) (*ScheduleService, *memory.MatchdayRepository, *memory.PickScheduleRepository) {
	t.Helper()

	matchdayRepo := memory.NewMatchdayRepository()
	teamRepo := memory.NewTeamRepository()
	scheduleRepo := memory.NewPickScheduleRepository()

	if err := matchdayRepo.Create(context.Background(), matchday.Matchday{
		ID:            "md-1",
		LeagueID:      "lg-1",
		Number:        1,
		Status:        matchday.StatusOpen,
		DeadlineEndAt: deadline,
		SlotMinutes:   90,
		CreatedAt:     time.Now(),
	}); err != nil {
		t.Fatalf("seed matchday: %v", err)
	}
	if err := teamRepo.CreateBatch(context.Background(), []team.Team{
		{ID: "tm-3", LeagueID: "lg-1", Name: "Gamma"},
		{ID: "tm-1", LeagueID: "lg-1", Name: "Alfa"},
		{ID: "tm-2", LeagueID: "lg-1", Name: "Beta"},
	}); err != nil {
		t.Fatalf("seed teams: %v", err)
	}

	return NewScheduleService(matchdayRepo, teamRepo, scheduleRepo, testLocation(t)), matchdayRepo, scheduleRepo
}

func TestScheduleServiceGenerate(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, loc)
	svc, _, scheduleRepo := newScheduleFixture(t, &deadline)

	slots, err := svc.Generate(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	if slots[0].TeamName != "Alfa" || slots[1].TeamName != "Beta" || slots[2].TeamName != "Gamma" {
		t.Fatalf("unexpected team order: %s %s %s", slots[0].TeamName, slots[1].TeamName, slots[2].TeamName)
	}
	if !slots[2].EndAt.Equal(deadline) {
		t.Fatalf("last slot must end at the deadline, got %v", slots[2].EndAt)
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i-1].EndAt.Equal(slots[i].StartAt) {
			t.Fatalf("slots must chain: %v vs %v", slots[i-1].EndAt, slots[i].StartAt)
		}
	}

	entries, err := scheduleRepo.ListByMatchday(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("list schedule: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 persisted entries, got %d", len(entries))
	}
}

func TestScheduleServiceGenerateWithoutDeadline(t *testing.T) {
	svc, _, _ := newScheduleFixture(t, nil)

	if _, err := svc.Generate(context.Background(), "lg-1", "md-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScheduleServiceGenerateLockedMatchday(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, loc)
	svc, matchdayRepo, _ := newScheduleFixture(t, &deadline)

	if err := matchdayRepo.UpdateStatus(context.Background(), "md-1", matchday.StatusLocked); err != nil {
		t.Fatalf("lock matchday: %v", err)
	}
	if _, err := svc.Generate(context.Background(), "lg-1", "md-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScheduleServiceGenerateUnknownMatchday(t *testing.T) {
	svc, _, _ := newScheduleFixture(t, nil)

	if _, err := svc.Generate(context.Background(), "lg-1", "md-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleServiceRecordSubmissionAndStatus(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, loc)
	svc, _, _ := newScheduleFixture(t, &deadline)

	if _, err := svc.Generate(context.Background(), "lg-1", "md-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Alfa's slot is 15:30-17:00; a 16:00 submission lands inside it.
	within := time.Date(2026, time.September, 4, 16, 0, 0, 0, loc)
	status, err := svc.RecordSubmission(context.Background(), "lg-1", "md-1", "tm-1", within)
	if err != nil {
		t.Fatalf("record submission: %v", err)
	}
	if status != pickschedule.StatusWithin {
		t.Fatalf("expected within, got %s", status)
	}

	early := time.Date(2026, time.September, 4, 10, 0, 0, 0, loc)
	status, err = svc.RecordSubmission(context.Background(), "lg-1", "md-1", "tm-2", early)
	if err != nil {
		t.Fatalf("record submission: %v", err)
	}
	if status != pickschedule.StatusEarly {
		t.Fatalf("expected early, got %s", status)
	}

	entries, err := svc.GetWithStatus(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("get with status: %v", err)
	}
	statuses := make(map[string]pickschedule.Status, len(entries))
	for _, entry := range entries {
		statuses[entry.TeamID] = entry.SubmittedStatus
	}
	if statuses["tm-1"] != pickschedule.StatusWithin {
		t.Fatalf("tm-1: expected within, got %s", statuses["tm-1"])
	}
	if statuses["tm-2"] != pickschedule.StatusEarly {
		t.Fatalf("tm-2: expected early, got %s", statuses["tm-2"])
	}
	if statuses["tm-3"] != pickschedule.StatusNone {
		t.Fatalf("tm-3: expected none, got %s", statuses["tm-3"])
	}
}

func TestScheduleServiceRecordSubmissionWithoutSchedule(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, loc)
	svc, _, _ := newScheduleFixture(t, &deadline)

	status, err := svc.RecordSubmission(context.Background(), "lg-1", "md-1", "tm-1", time.Now())
	if err != nil {
		t.Fatalf("record submission: %v", err)
	}
	if status != pickschedule.StatusNone {
		t.Fatalf("expected none without a schedule, got %s", status)
	}
}

func TestScheduleServiceRecap(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, loc)
	svc, _, _ := newScheduleFixture(t, &deadline)

	if _, err := svc.Generate(context.Background(), "lg-1", "md-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	text, err := svc.Recap(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("recap: %v", err)
	}
	if !strings.HasPrefix(text, "Giornata 1") {
		t.Fatalf("recap must open with the matchday header, got %q", text)
	}
	if !strings.Contains(text, "Alfa") || !strings.Contains(text, "Gamma") {
		t.Fatalf("recap must list every team:\n%s", text)
	}
}

func TestScheduleServiceRecapEmptySchedule(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, loc)
	svc, _, _ := newScheduleFixture(t, &deadline)

	text, err := svc.Recap(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("recap: %v", err)
	}
	if text != pickschedule.EmptyRecapMarker {
		t.Fatalf("expected empty marker, got %q", text)
	}
}
