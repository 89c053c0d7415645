package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/domain/rating"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
)

type scoringFixture struct {
	svc          *ScoringService
	matchdayRepo *memory.MatchdayRepository
	pickRepo     *memory.PickRepository
	ratingRepo   *memory.RatingRepository
	scoreRepo    *memory.ScoringRepository
}

func newScoringFixture(t *testing.T) scoringFixture {
	t.Helper()

	matchdayRepo := memory.NewMatchdayRepository()
	teamRepo := memory.NewTeamRepository()
	pickRepo := memory.NewPickRepository()
	ratingRepo := memory.NewRatingRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	scoreRepo := memory.NewScoringRepository()

	if err := teamRepo.CreateBatch(context.Background(), seedTeams("lg-1")); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
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

	svc := NewScoringService(matchdayRepo, teamRepo, pickRepo, ratingRepo, playerRepo, scoreRepo, nil, nil)
	return scoringFixture{svc: svc, matchdayRepo: matchdayRepo, pickRepo: pickRepo, ratingRepo: ratingRepo, scoreRepo: scoreRepo}
}

func (fx scoringFixture) seedPickWithVotes(t *testing.T, teamID string, playerIDs [4]string, votes map[string]float64) {
	t.Helper()

	if err := fx.pickRepo.Create(context.Background(), pick.Pick{
		LeagueID:    "lg-1",
		MatchdayID:  "md-1",
		TeamID:      teamID,
		GKPlayerID:  playerIDs[0],
		DefPlayerID: playerIDs[1],
		MidPlayerID: playerIDs[2],
		FwdPlayerID: playerIDs[3],
		SubmittedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed pick: %v", err)
	}

	rows := make([]rating.Rating, 0, len(votes))
	for playerID, vote := range votes {
		rows = append(rows, rating.Rating{MatchdayID: "md-1", PlayerID: playerID, Vote: vote})
	}
	if _, err := fx.ratingRepo.UpsertBulk(context.Background(), "md-1", rows); err != nil {
		t.Fatalf("seed ratings: %v", err)
	}
}

func TestScoringServiceLiveScores(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-1",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 6.5, "pl-def-02": 7, "pl-mid-02": 6, "pl-fwd-02": 7.5})

	rows, err := fx.svc.LiveScores(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("live scores: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected a row per team, got %d", len(rows))
	}
	if rows[0].TeamID != "tm-1" || rows[0].TotalScore != 27 {
		t.Fatalf("expected tm-1 on top with 27, got %s %.1f", rows[0].TeamID, rows[0].TotalScore)
	}
	// Teams without a pick score zero and sort by name.
	if rows[1].TotalScore != 0 || rows[2].TotalScore != 0 {
		t.Fatalf("pickless teams must score 0: %+v", rows[1:])
	}
}

func TestScoringServiceMissingVoteCountsZero(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-1",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 6}) // three players unrated

	rows, err := fx.svc.LiveScores(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("live scores: %v", err)
	}
	if rows[0].TotalScore != 6 {
		t.Fatalf("expected 6 with unrated players at 0, got %.1f", rows[0].TotalScore)
	}
}

func TestScoringServiceSnapshotAndTable(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-2",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 7, "pl-def-02": 7, "pl-mid-02": 7, "pl-fwd-02": 7})

	if err := fx.svc.SnapshotMatchday(context.Background(), "lg-1", "md-1", true); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	table, err := fx.svc.Table(context.Background(), "lg-1")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if table[0].TeamID != "tm-2" || table[0].TotalScore != 28 || table[0].Played != 1 {
		t.Fatalf("unexpected leader: %+v", table[0])
	}
	if table[1].Played != 1 {
		t.Fatalf("every team gets a final snapshot row, got %+v", table[1])
	}
}

func TestScoringServiceProvisionalSnapshotStaysOutOfTable(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-1",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 8})

	if err := fx.svc.SnapshotMatchday(context.Background(), "lg-1", "md-1", false); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	table, err := fx.svc.Table(context.Background(), "lg-1")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	for _, row := range table {
		if row.Played != 0 || row.TotalScore != 0 {
			t.Fatalf("provisional rows must not count: %+v", row)
		}
	}
}

func TestScoringServiceSeasonStats(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-1",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 6, "pl-def-02": 6, "pl-mid-02": 6, "pl-fwd-02": 6})

	if err := fx.svc.SnapshotMatchday(context.Background(), "lg-1", "md-1", true); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	stats, err := fx.svc.SeasonStats(context.Background(), pickPrincipal("tm-1"))
	if err != nil {
		t.Fatalf("season stats: %v", err)
	}
	if stats.Rank != 1 || stats.Played != 1 {
		t.Fatalf("unexpected rank/played: %+v", stats)
	}
	if stats.Total != 24 || stats.Best != 24 || stats.Worst != 24 || stats.Average != 24 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if len(stats.History) != 1 || !stats.History[0].IsFinal {
		t.Fatalf("unexpected history: %+v", stats.History)
	}
}

func TestScoringServiceCumulativeSeries(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-1",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 5, "pl-def-02": 5, "pl-mid-02": 5, "pl-fwd-02": 5})
	if err := fx.svc.SnapshotMatchday(context.Background(), "lg-1", "md-1", true); err != nil {
		t.Fatalf("snapshot md-1: %v", err)
	}
	if err := fx.matchdayRepo.UpdateStatus(context.Background(), "md-1", matchday.StatusLocked); err != nil {
		t.Fatalf("lock md-1: %v", err)
	}

	deadline := time.Date(2026, time.September, 11, 20, 0, 0, 0, time.UTC)
	if err := fx.matchdayRepo.Create(context.Background(), matchday.Matchday{
		ID: "md-2", LeagueID: "lg-1", Number: 2, Status: matchday.StatusOpen,
		DeadlineEndAt: &deadline, SlotMinutes: 90, CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed md-2: %v", err)
	}
	if err := fx.svc.SnapshotMatchday(context.Background(), "lg-1", "md-2", true); err != nil {
		t.Fatalf("snapshot md-2: %v", err)
	}

	series, err := fx.svc.CumulativeSeries(context.Background(), "lg-1")
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	var last float64
	for _, point := range series {
		if point.TeamID != "tm-1" {
			continue
		}
		if point.Cumulative < last {
			t.Fatalf("cumulative must never decrease: %+v", series)
		}
		last = point.Cumulative
	}
	if last != 20 {
		t.Fatalf("expected running total 20, got %.1f", last)
	}
}

func TestScoringServiceRecomputeLeague(t *testing.T) {
	fx := newScoringFixture(t)
	fx.seedPickWithVotes(t, "tm-1",
		[4]string{"pl-gk-01", "pl-def-02", "pl-mid-02", "pl-fwd-02"},
		map[string]float64{"pl-gk-01": 6})

	if err := fx.svc.RecomputeLeague(context.Background(), "lg-1"); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	rows, err := fx.scoreRepo.ListByMatchday(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("list snapshot: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected a snapshot row per team, got %d", len(rows))
	}
	// md-1 is still open, so the recompute writes provisional rows.
	for _, row := range rows {
		if row.IsFinal {
			t.Fatalf("open matchday snapshot must be provisional: %+v", row)
		}
	}
}
