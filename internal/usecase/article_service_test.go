package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
)

type stubComposer struct {
	prompt string
	title  string
	body   string
	err    error
}

func (c *stubComposer) Compose(_ context.Context, prompt string) (string, string, error) {
	c.prompt = prompt
	return c.title, c.body, c.err
}

func newArticleFixture(t *testing.T, composer articleComposer) *ArticleService {
	t.Helper()

	matchdayRepo := memory.NewMatchdayRepository()
	teamRepo := memory.NewTeamRepository()
	if err := teamRepo.CreateBatch(context.Background(), seedTeams("lg-1")); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
	deadline := time.Date(2026, time.September, 4, 20, 0, 0, 0, time.UTC)
	if err := matchdayRepo.Create(context.Background(), matchday.Matchday{
		ID: "md-1", LeagueID: "lg-1", Number: 1, Status: matchday.StatusOpen,
		DeadlineEndAt: &deadline, SlotMinutes: 90, CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed matchday: %v", err)
	}

	scores := NewScoringService(
		matchdayRepo, teamRepo,
		memory.NewPickRepository(), memory.NewRatingRepository(),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewScoringRepository(), nil, nil,
	)

	return NewArticleService(matchdayRepo, memory.NewArticleRepository(), scores, composer)
}

func TestArticleServiceGenerate(t *testing.T) {
	composer := &stubComposer{title: "Che giornata!", body: "Un testo."}
	svc := newArticleFixture(t, composer)

	item, err := svc.Generate(context.Background(), "lg-1", "md-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if item.Title != "Che giornata!" || item.MatchdayNumber != 1 {
		t.Fatalf("unexpected article: %+v", item)
	}
	if !strings.Contains(composer.prompt, "giornata 1") {
		t.Fatalf("prompt must name the matchday:\n%s", composer.prompt)
	}
	if !strings.Contains(composer.prompt, "Alfa") {
		t.Fatalf("prompt must carry the team scores:\n%s", composer.prompt)
	}

	stored, exists, err := svc.GetByMatchday(context.Background(), "lg-1", "md-1")
	if err != nil || !exists {
		t.Fatalf("stored article: exists=%v err=%v", exists, err)
	}
	if stored.Content != "Un testo." {
		t.Fatalf("unexpected stored content: %q", stored.Content)
	}
}

func TestArticleServiceGenerateEmptyResult(t *testing.T) {
	svc := newArticleFixture(t, &stubComposer{title: "", body: ""})

	if _, err := svc.Generate(context.Background(), "lg-1", "md-1"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestArticleServiceGenerateWithoutComposer(t *testing.T) {
	svc := newArticleFixture(t, nil)

	if _, err := svc.Generate(context.Background(), "lg-1", "md-1"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
