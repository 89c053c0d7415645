package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantachat/fantachat-api/internal/domain/article"
	qb "github.com/fantachat/fantachat-api/internal/platform/querybuilder"
)

type ArticleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Upsert(ctx context.Context, item article.Article) error {
	insertModel := articleInsertModel{
		LeagueID:       item.LeagueID,
		MatchdayID:     item.MatchdayID,
		MatchdayNumber: item.MatchdayNumber,
		Title:          item.Title,
		Content:        item.Content,
		CreatedAt:      item.CreatedAt,
	}

	query, args, err := qb.InsertModel("matchday_articles", insertModel, `ON CONFLICT (league_id, matchday_id)
DO UPDATE SET
    matchday_number = EXCLUDED.matchday_number,
    title = EXCLUDED.title,
    content = EXCLUDED.content,
    created_at = EXCLUDED.created_at`)
	if err != nil {
		return fmt.Errorf("build article upsert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}

	return nil
}

func (r *ArticleRepository) GetByMatchday(ctx context.Context, leagueID, matchdayID string) (article.Article, bool, error) {
	query, args, err := articleBaseSelectBuilder().
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday_id", matchdayID),
		).
		ToSQL()
	if err != nil {
		return article.Article{}, false, fmt.Errorf("build get article query: %w", err)
	}

	var row articleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return article.Article{}, false, nil
		}
		return article.Article{}, false, fmt.Errorf("get article: %w", err)
	}

	return articleFromRow(row), true, nil
}

func (r *ArticleRepository) ListByLeague(ctx context.Context, leagueID string) ([]article.Article, error) {
	query, args, err := articleBaseSelectBuilder().
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("matchday_number DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list articles query: %w", err)
	}

	var rows []articleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	out := make([]article.Article, 0, len(rows))
	for _, row := range rows {
		out = append(out, articleFromRow(row))
	}
	return out, nil
}

func articleBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matchday_articles")
}
