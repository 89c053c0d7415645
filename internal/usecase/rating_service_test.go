package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
)

type ratingFixture struct {
	svc      *RatingService
	pickRepo *memory.PickRepository
}

func newRatingFixture(t *testing.T) ratingFixture {
	t.Helper()

	matchdayRepo := memory.NewMatchdayRepository()
	pickRepo := memory.NewPickRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	ratingRepo := memory.NewRatingRepository()
	realteamRepo := memory.NewRealTeamRepository(memory.SeedRealTeams())
	fixtureRepo := memory.NewFixtureRepository()

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

	return ratingFixture{
		svc:      NewRatingService(matchdayRepo, pickRepo, playerRepo, ratingRepo, realteamRepo, fixtureRepo),
		pickRepo: pickRepo,
	}
}

func TestRatingServiceUpsertBulk(t *testing.T) {
	fx := newRatingFixture(t)

	count, err := fx.svc.UpsertBulk(context.Background(), "lg-1", "md-1", []RatingInput{
		{PlayerID: "pl-gk-01", Vote: 6.5},
		{PlayerID: "pl-fwd-01", Vote: 10},
		{PlayerID: "pl-def-02", Vote: 0},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 upserts, got %d", count)
	}
}

func TestRatingServiceUpsertBulkVoteBounds(t *testing.T) {
	fx := newRatingFixture(t)

	for _, vote := range []float64{-0.5, 10.5} {
		_, err := fx.svc.UpsertBulk(context.Background(), "lg-1", "md-1", []RatingInput{
			{PlayerID: "pl-gk-01", Vote: vote},
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("vote %g: expected ErrInvalidInput, got %v", vote, err)
		}
	}
}

func TestRatingServiceUpsertBulkDuplicatePlayer(t *testing.T) {
	fx := newRatingFixture(t)

	_, err := fx.svc.UpsertBulk(context.Background(), "lg-1", "md-1", []RatingInput{
		{PlayerID: "pl-gk-01", Vote: 6},
		{PlayerID: "pl-gk-01", Vote: 7},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRatingServiceUpsertBulkUnknownPlayer(t *testing.T) {
	fx := newRatingFixture(t)

	_, err := fx.svc.UpsertBulk(context.Background(), "lg-1", "md-1", []RatingInput{
		{PlayerID: "pl-nope", Vote: 6},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRatingServiceUpsertBulkEmpty(t *testing.T) {
	fx := newRatingFixture(t)

	_, err := fx.svc.UpsertBulk(context.Background(), "lg-1", "md-1", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRatingServicePickedPlayers(t *testing.T) {
	fx := newRatingFixture(t)

	if err := fx.pickRepo.Create(context.Background(), pick.Pick{
		LeagueID:    "lg-1",
		MatchdayID:  "md-1",
		TeamID:      "tm-1",
		GKPlayerID:  "pl-gk-01",
		DefPlayerID: "pl-def-02",
		MidPlayerID: "pl-mid-02",
		FwdPlayerID: "pl-fwd-02",
		SubmittedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed pick: %v", err)
	}
	if _, err := fx.svc.UpsertBulk(context.Background(), "lg-1", "md-1", []RatingInput{
		{PlayerID: "pl-def-02", Vote: 7.5},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	picked, err := fx.svc.PickedPlayers(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("picked players: %v", err)
	}
	if len(picked) != 4 {
		t.Fatalf("expected 4 picked players, got %d", len(picked))
	}
	// GK first, voted defender second.
	if picked[0].Player.ID != "pl-gk-01" || picked[0].Vote != nil {
		t.Fatalf("unexpected first row: %+v", picked[0])
	}
	if picked[1].Player.ID != "pl-def-02" || picked[1].Vote == nil || *picked[1].Vote != 7.5 {
		t.Fatalf("unexpected second row: %+v", picked[1])
	}
}

func TestRatingServiceSetTop6(t *testing.T) {
	fx := newRatingFixture(t)

	clubs := []string{"club-int", "club-juv", "club-mil", "club-nap", "club-rom", "club-laz"}
	if err := fx.svc.SetTop6(context.Background(), "lg-1", "md-1", clubs); err != nil {
		t.Fatalf("set top6: %v", err)
	}

	ranked, err := fx.svc.GetTop6(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("get top6: %v", err)
	}
	if len(ranked) != 6 {
		t.Fatalf("expected 6 ranked clubs, got %d", len(ranked))
	}
	if ranked[0].Rank != 1 || ranked[0].Club.ID != "club-int" {
		t.Fatalf("unexpected first club: %+v", ranked[0])
	}
	if ranked[5].Rank != 6 || ranked[5].Club.ID != "club-laz" {
		t.Fatalf("unexpected last club: %+v", ranked[5])
	}
}

func TestRatingServiceSetTop6Rejections(t *testing.T) {
	fx := newRatingFixture(t)

	cases := map[string][]string{
		"five clubs":     {"club-int", "club-juv", "club-mil", "club-nap", "club-rom"},
		"duplicate club": {"club-int", "club-int", "club-mil", "club-nap", "club-rom", "club-laz"},
		"unknown club":   {"club-int", "club-juv", "club-mil", "club-nap", "club-rom", "club-xxx"},
	}
	for name, clubs := range cases {
		if err := fx.svc.SetTop6(context.Background(), "lg-1", "md-1", clubs); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestRatingServiceSetFixtures(t *testing.T) {
	fx := newRatingFixture(t)

	pairs := []FixtureInput{
		{HomeClubID: "club-int", AwayClubID: "club-juv"},
		{HomeClubID: "club-mil", AwayClubID: "club-nap"},
	}
	if err := fx.svc.SetFixtures(context.Background(), "lg-1", "md-1", pairs); err != nil {
		t.Fatalf("set fixtures: %v", err)
	}

	round, err := fx.svc.ListFixtures(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(round) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(round))
	}
	if round[0].Position != 1 || round[0].Home.ID != "club-int" || round[0].Away.ID != "club-juv" {
		t.Fatalf("unexpected first fixture: %+v", round[0])
	}
	if round[1].Position != 2 || round[1].Home.Name != "Milan" {
		t.Fatalf("unexpected second fixture: %+v", round[1])
	}

	// A second entry replaces the round.
	if err := fx.svc.SetFixtures(context.Background(), "lg-1", "md-1", []FixtureInput{
		{HomeClubID: "club-rom", AwayClubID: "club-laz"},
	}); err != nil {
		t.Fatalf("replace fixtures: %v", err)
	}
	round, err = fx.svc.ListFixtures(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("list fixtures after replace: %v", err)
	}
	if len(round) != 1 || round[0].Home.ID != "club-rom" {
		t.Fatalf("unexpected round after replace: %+v", round)
	}
}

func TestRatingServiceSetFixturesRejections(t *testing.T) {
	fx := newRatingFixture(t)

	cases := map[string][]FixtureInput{
		"empty round": nil,
		"self pairing": {
			{HomeClubID: "club-int", AwayClubID: "club-int"},
		},
		"club twice in round": {
			{HomeClubID: "club-int", AwayClubID: "club-juv"},
			{HomeClubID: "club-int", AwayClubID: "club-mil"},
		},
		"unknown club": {
			{HomeClubID: "club-int", AwayClubID: "club-xxx"},
		},
		"missing away": {
			{HomeClubID: "club-int"},
		},
	}
	for name, pairs := range cases {
		if err := fx.svc.SetFixtures(context.Background(), "lg-1", "md-1", pairs); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestRatingServiceUnknownMatchday(t *testing.T) {
	fx := newRatingFixture(t)

	if _, err := fx.svc.PickedPlayers(context.Background(), "lg-1", "md-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := fx.svc.ListFixtures(context.Background(), "lg-2", "md-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign league, got %v", err)
	}
}
