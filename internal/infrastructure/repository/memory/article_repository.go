package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fantachat/fantachat-api/internal/domain/article"
)

type ArticleRepository struct {
	mu    sync.RWMutex
	items map[string]article.Article
}

func NewArticleRepository() *ArticleRepository {
	return &ArticleRepository{items: make(map[string]article.Article)}
}

func (r *ArticleRepository) Upsert(_ context.Context, item article.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[articleKey(item.LeagueID, item.MatchdayID)] = item
	return nil
}

func (r *ArticleRepository) GetByMatchday(_ context.Context, leagueID, matchdayID string) (article.Article, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[articleKey(leagueID, matchdayID)]
	if !ok {
		return article.Article{}, false, nil
	}

	return item, true, nil
}

func (r *ArticleRepository) ListByLeague(_ context.Context, leagueID string) ([]article.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]article.Article, 0)
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchdayNumber > out[j].MatchdayNumber })

	return out, nil
}

func articleKey(leagueID, matchdayID string) string {
	return leagueID + "::" + matchdayID
}
