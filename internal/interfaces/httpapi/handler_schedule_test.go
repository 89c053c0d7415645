package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/fantachat/fantachat-api/internal/domain/user"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
	"github.com/fantachat/fantachat-api/internal/platform/id"
	"github.com/fantachat/fantachat-api/internal/usecase"
)

type stubVerifier struct {
	userID string
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return user.Principal{}, fmt.Errorf("%w: empty token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: v.userID}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository()
	teamRepo := memory.NewTeamRepository()
	membershipRepo := memory.NewMembershipRepository()
	matchdayRepo := memory.NewMatchdayRepository()
	scheduleRepo := memory.NewPickScheduleRepository()
	pickRepo := memory.NewPickRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	realteamRepo := memory.NewRealTeamRepository(memory.SeedRealTeams())
	ratingRepo := memory.NewRatingRepository()
	fixtureRepo := memory.NewFixtureRepository()
	scoreRepo := memory.NewScoringRepository()
	articleRepo := memory.NewArticleRepository()

	leagueService := usecase.NewLeagueService(leagueRepo, teamRepo, membershipRepo, id.RandomGenerator{}, id.InviteCodeGenerator{})
	matchdayService := usecase.NewMatchdayService(leagueRepo, matchdayRepo, id.RandomGenerator{})
	scheduleService := usecase.NewScheduleService(matchdayRepo, teamRepo, scheduleRepo, time.UTC)
	pickService := usecase.NewPickService(matchdayRepo, playerRepo, realteamRepo, pickRepo)
	pickService.SetSubmissionRecorder(scheduleService)
	ratingService := usecase.NewRatingService(matchdayRepo, pickRepo, playerRepo, ratingRepo, realteamRepo, fixtureRepo)
	scoringService := usecase.NewScoringService(matchdayRepo, teamRepo, pickRepo, ratingRepo, playerRepo, scoreRepo, nil, nil)
	matchdayService.SetSnapshotter(scoringService)
	articleService := usecase.NewArticleService(matchdayRepo, articleRepo, scoringService, nil)

	logger := slog.New(slog.DiscardHandler)
	handler := NewHandler(leagueService, matchdayService, scheduleService, pickService, ratingService, scoringService, articleService, logger)

	return NewRouter(handler, stubVerifier{userID: "usr-1"}, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer token-1")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		APIVersion string          `json:"apiVersion"`
		Data       json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := sonic.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("unmarshal data: %v (body %s)", err, rec.Body.String())
	}
}

func TestScheduleEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/leagues", `{"name":"Lega Amici","team_names":["Alfa","Beta","Gamma"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create league: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		League struct {
			ID string `json:"id"`
		} `json:"league"`
	}
	decodeData(t, rec, &created)
	leagueID := created.League.ID
	if leagueID == "" {
		t.Fatal("expected league id in create response")
	}

	// Friday 20:00 UTC deadline keeps all three slots clear of the
	// nightly blackout.
	rec = doJSON(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/matchdays",
		`{"deadline_end_at":"2026-03-06T20:00:00Z","slot_minutes":90}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("open matchday: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var opened struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &opened)

	rec = doJSON(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/schedule", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("generate schedule: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var generated struct {
		SlotCount int `json:"slot_count"`
		Slots     []struct {
			TeamName  string    `json:"team_name"`
			SlotEndAt time.Time `json:"slot_end_at"`
		} `json:"slots"`
	}
	decodeData(t, rec, &generated)
	if generated.SlotCount != 3 {
		t.Fatalf("expected 3 slots, got %d", generated.SlotCount)
	}
	last := generated.Slots[len(generated.Slots)-1]
	if last.TeamName != "Gamma" || !last.SlotEndAt.Equal(time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last slot: %+v", last)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/schedule", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get schedule: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var entries []struct {
		TeamName        string `json:"team_name"`
		SubmittedStatus string `json:"submitted_status"`
	}
	decodeData(t, rec, &entries)
	if len(entries) != 3 || entries[0].TeamName != "Alfa" || entries[0].SubmittedStatus != "none" {
		t.Fatalf("unexpected schedule entries: %+v", entries)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/schedule/recap", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get recap: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("expected plain text recap, got %q", got)
	}
	recap := rec.Body.String()
	if !strings.Contains(recap, "Giornata 1") || !strings.Contains(recap, "Alfa") {
		t.Fatalf("unexpected recap: %q", recap)
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/lg-1/table", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", rec.Code)
	}
}
