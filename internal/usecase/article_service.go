package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/fantachat/fantachat-api/internal/domain/article"
	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/scoring"
)

// articleComposer is the newsdesk boundary: it turns the matchday brief
// into a titled piece.
type articleComposer interface {
	Compose(ctx context.Context, prompt string) (title string, content string, err error)
}

type matchdayScoresReader interface {
	LiveScores(ctx context.Context, leagueID, matchdayID string) ([]scoring.TeamScore, error)
	Table(ctx context.Context, leagueID string) ([]scoring.TableRow, error)
}

// ArticleService generates and serves the matchday newspaper pieces.
type ArticleService struct {
	matchdayRepo matchday.Repository
	articleRepo  article.Repository
	scores       matchdayScoresReader
	composer     articleComposer
	now          func() time.Time
}

func NewArticleService(
	matchdayRepo matchday.Repository,
	articleRepo article.Repository,
	scores matchdayScoresReader,
	composer articleComposer,
) *ArticleService {
	return &ArticleService{
		matchdayRepo: matchdayRepo,
		articleRepo:  articleRepo,
		scores:       scores,
		composer:     composer,
		now:          time.Now,
	}
}

// Generate gathers the matchday results and the league table, asks the
// newsdesk for the piece, and stores it. Regenerating overwrites the
// previous article for the matchday.
func (s *ArticleService) Generate(ctx context.Context, leagueID, matchdayID string) (article.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArticleService.Generate")
	defer span.End()

	if s.composer == nil {
		return article.Article{}, fmt.Errorf("%w: article generation is not configured", ErrDependencyUnavailable)
	}

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return article.Article{}, err
	}

	var scores []scoring.TeamScore
	var table []scoring.TableRow

	gather := pool.New().WithContext(ctx).WithCancelOnError()
	gather.Go(func(ctx context.Context) error {
		rows, err := s.scores.LiveScores(ctx, leagueID, matchdayID)
		if err != nil {
			return fmt.Errorf("gather matchday scores: %w", err)
		}
		scores = rows
		return nil
	})
	gather.Go(func(ctx context.Context) error {
		rows, err := s.scores.Table(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("gather league table: %w", err)
		}
		table = rows
		return nil
	})
	if err := gather.Wait(); err != nil {
		return article.Article{}, err
	}

	title, content, err := s.composer.Compose(ctx, buildArticlePrompt(md.Number, scores, table))
	if err != nil {
		return article.Article{}, fmt.Errorf("compose article: %w", err)
	}
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return article.Article{}, fmt.Errorf("%w: newsdesk returned an empty article", ErrDependencyUnavailable)
	}

	item := article.Article{
		LeagueID:       leagueID,
		MatchdayID:     matchdayID,
		MatchdayNumber: md.Number,
		Title:          title,
		Content:        content,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.articleRepo.Upsert(ctx, item); err != nil {
		return article.Article{}, fmt.Errorf("upsert article: %w", err)
	}

	return item, nil
}

func (s *ArticleService) ListByLeague(ctx context.Context, leagueID string) ([]article.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArticleService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	items, err := s.articleRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league articles: %w", err)
	}

	return items, nil
}

func (s *ArticleService) GetByMatchday(ctx context.Context, leagueID, matchdayID string) (article.Article, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArticleService.GetByMatchday")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return article.Article{}, false, err
	}

	item, exists, err := s.articleRepo.GetByMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return article.Article{}, false, fmt.Errorf("get article by matchday: %w", err)
	}

	return item, exists, nil
}

// buildArticlePrompt renders the newsdesk brief: an Italian sports
// piece over the matchday results and the current standings.
func buildArticlePrompt(matchdayNumber int, scores []scoring.TeamScore, table []scoring.TableRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scrivi un articolo da giornalista sportivo italiano, ironico ma competente, sulla giornata %d della lega FantaChat.\n\n", matchdayNumber)

	b.WriteString("Risultati della giornata:\n")
	for _, row := range scores {
		fmt.Fprintf(&b, "- %s: %.1f punti\n", row.TeamName, row.TotalScore)
	}

	b.WriteString("\nClassifica attuale:\n")
	for i, row := range table {
		fmt.Fprintf(&b, "%d. %s: %.1f punti (%d giornate)\n", i+1, row.TeamName, row.TotalScore, row.Played)
	}

	b.WriteString("\nCommenta i risultati, celebra il vincitore di giornata e punzecchia l'ultimo in classifica.")
	return b.String()
}

func (s *ArticleService) loadMatchday(ctx context.Context, leagueID, matchdayID string) (matchday.Matchday, error) {
	leagueID = strings.TrimSpace(leagueID)
	matchdayID = strings.TrimSpace(matchdayID)
	if leagueID == "" || matchdayID == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: league_id and matchday_id are required", ErrInvalidInput)
	}

	md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get matchday by id: %w", err)
	}
	if !exists || md.LeagueID != leagueID {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}

	return md, nil
}
