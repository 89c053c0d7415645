package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/domain/realteam"
	"github.com/fantachat/fantachat-api/internal/domain/team"
	"github.com/fantachat/fantachat-api/internal/domain/user"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
)

type pickFixture struct {
	svc          *PickService
	matchdayRepo *memory.MatchdayRepository
	realteamRepo *memory.RealTeamRepository
	pickRepo     *memory.PickRepository
}

func newPickFixture(t *testing.T) pickFixture {
	t.Helper()

	matchdayRepo := memory.NewMatchdayRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	realteamRepo := memory.NewRealTeamRepository(memory.SeedRealTeams())
	pickRepo := memory.NewPickRepository()

	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, time.UTC)
	if err := matchdayRepo.Create(context.Background(), matchday.Matchday{
		ID:            "md-1",
		LeagueID:      "lg-1",
		Number:        1,
		Status:        matchday.StatusOpen,
		DeadlineEndAt: &deadline,
		SlotMinutes:   90,
		CreatedAt:     time.Now(),
	}); err != nil {
		t.Fatalf("seed matchday: %v", err)
	}

	return pickFixture{
		svc:          NewPickService(matchdayRepo, playerRepo, realteamRepo, pickRepo),
		matchdayRepo: matchdayRepo,
		realteamRepo: realteamRepo,
		pickRepo:     pickRepo,
	}
}

func pickPrincipal(teamID string) user.Principal {
	return user.Principal{UserID: "usr-1", LeagueID: "lg-1", TeamID: teamID, Role: "player"}
}

func seedTeams(leagueID string) []team.Team {
	return []team.Team{
		{ID: "tm-1", LeagueID: leagueID, Name: "Alfa"},
		{ID: "tm-2", LeagueID: leagueID, Name: "Beta"},
		{ID: "tm-3", LeagueID: leagueID, Name: "Gamma"},
	}
}

func memoryTop6(repo *memory.RealTeamRepository, matchdayID string, clubIDs ...string) error {
	entries := make([]realteam.Top6Entry, 0, len(clubIDs))
	for i, clubID := range clubIDs {
		entries = append(entries, realteam.Top6Entry{MatchdayID: matchdayID, Rank: i + 1, RealTeamID: clubID})
	}
	_, err := repo.ReplaceTop6(context.Background(), matchdayID, entries)
	return err
}

// Sommer (Inter GK), Bremer (Juve DEF), Pellegrini (Roma MID), Kean
// (Fiorentina FWD): four roles, four distinct clubs.
func validPicks() SavePicksInput {
	return SavePicksInput{
		GoalkeeperID: "pl-gk-01",
		DefenderID:   "pl-def-02",
		MidfielderID: "pl-mid-02",
		ForwardID:    "pl-fwd-02",
	}
}

func TestPickServiceSave(t *testing.T) {
	fx := newPickFixture(t)

	item, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if item.TeamID != "tm-1" || item.GKPlayerID != "pl-gk-01" {
		t.Fatalf("unexpected pick: %+v", item)
	}
	if item.SubmittedAt.IsZero() {
		t.Fatal("submitted_at must be stamped")
	}
}

func TestPickServiceSaveLockedMatchday(t *testing.T) {
	fx := newPickFixture(t)
	if err := fx.matchdayRepo.UpdateStatus(context.Background(), "md-1", matchday.StatusLocked); err != nil {
		t.Fatalf("lock matchday: %v", err)
	}

	_, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks())
	if !errors.Is(err, pick.ErrMatchdayLocked) {
		t.Fatalf("expected ErrMatchdayLocked, got %v", err)
	}
}

func TestPickServiceSaveTwice(t *testing.T) {
	fx := newPickFixture(t)

	if _, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	_, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks())
	if !errors.Is(err, pick.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestPickServiceSaveWrongRole(t *testing.T) {
	fx := newPickFixture(t)

	input := validPicks()
	input.GoalkeeperID = "pl-def-01" // defender in the GK slot
	_, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", input)
	if !errors.Is(err, pick.ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}
}

func TestPickServiceSaveDuplicateClub(t *testing.T) {
	fx := newPickFixture(t)

	input := validPicks()
	input.DefenderID = "pl-def-01"   // Inter
	input.MidfielderID = "pl-mid-01" // Inter again
	_, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", input)
	if !errors.Is(err, pick.ErrDuplicateRealTeam) {
		t.Fatalf("expected ErrDuplicateRealTeam, got %v", err)
	}
}

func TestPickServiceSaveTooManyTop6(t *testing.T) {
	fx := newPickFixture(t)

	err := memoryTop6(fx.realteamRepo, "md-1", "club-int", "club-juv", "club-mil", "club-nap", "club-rom", "club-laz")
	if err != nil {
		t.Fatalf("seed top6: %v", err)
	}

	// Sommer (Inter) and Bremer (Juventus) are both top-6 picks.
	_, _, saveErr := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks())
	if !errors.Is(saveErr, pick.ErrTooManyTop6) {
		t.Fatalf("expected ErrTooManyTop6, got %v", saveErr)
	}
}

func TestPickServiceSavePlayerTaken(t *testing.T) {
	fx := newPickFixture(t)

	if _, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks()); err != nil {
		t.Fatalf("first team save: %v", err)
	}

	input := SavePicksInput{
		GoalkeeperID: "pl-gk-01", // already picked by tm-1
		DefenderID:   "pl-def-03",
		MidfielderID: "pl-mid-03",
		ForwardID:    "pl-fwd-03",
	}
	_, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-2"), "md-1", input)
	if !errors.Is(err, pick.ErrPlayerAlreadyTaken) {
		t.Fatalf("expected ErrPlayerAlreadyTaken, got %v", err)
	}
}

func TestPickServiceSaveInactivePlayer(t *testing.T) {
	fx := newPickFixture(t)

	input := validPicks()
	input.ForwardID = "pl-fwd-04" // Zapata, inactive in the seed
	_, _, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPickServiceSaveRecordsScheduleSubmission(t *testing.T) {
	fx := newPickFixture(t)

	teamRepo := memory.NewTeamRepository()
	if err := teamRepo.CreateBatch(context.Background(), seedTeams("lg-1")); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
	scheduleRepo := memory.NewPickScheduleRepository()
	scheduler := NewScheduleService(fx.matchdayRepo, teamRepo, scheduleRepo, time.UTC)
	if _, err := scheduler.Generate(context.Background(), "lg-1", "md-1"); err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	fx.svc.SetSubmissionRecorder(scheduler)

	_, status, err := fx.svc.Save(context.Background(), pickPrincipal("tm-1"), "md-1", validPicks())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if status == "" {
		t.Fatal("expected a derived schedule status")
	}

	entry, exists, err := scheduleRepo.GetByTeam(context.Background(), "lg-1", "md-1", "tm-1")
	if err != nil || !exists {
		t.Fatalf("get schedule entry: exists=%v err=%v", exists, err)
	}
	if entry.SubmittedAt == nil {
		t.Fatal("schedule entry must carry the submission timestamp")
	}
}
