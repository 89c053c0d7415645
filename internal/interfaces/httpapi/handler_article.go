package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/article"
)

type articleDTO struct {
	MatchdayID     string    `json:"matchday_id"`
	MatchdayNumber int       `json:"matchday_number"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *Handler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateArticle")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	item, err := h.articleService.Generate(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate article failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, articleToDTO(item))
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArticles")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	articles, err := h.articleService.ListByLeague(ctx, principal.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list articles failed", "league_id", principal.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]articleDTO, 0, len(articles))
	for _, item := range articles {
		items = append(items, articleToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func articleToDTO(item article.Article) articleDTO {
	return articleDTO{
		MatchdayID:     item.MatchdayID,
		MatchdayNumber: item.MatchdayNumber,
		Title:          item.Title,
		Content:        item.Content,
		CreatedAt:      item.CreatedAt,
	}
}
