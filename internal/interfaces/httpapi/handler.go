package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fantachat/fantachat-api/internal/domain/user"
	"github.com/fantachat/fantachat-api/internal/usecase"
)

type Handler struct {
	leagueService   *usecase.LeagueService
	matchdayService *usecase.MatchdayService
	scheduleService *usecase.ScheduleService
	pickService     *usecase.PickService
	ratingService   *usecase.RatingService
	scoringService  *usecase.ScoringService
	articleService  *usecase.ArticleService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	matchdayService *usecase.MatchdayService,
	scheduleService *usecase.ScheduleService,
	pickService *usecase.PickService,
	ratingService *usecase.RatingService,
	scoringService *usecase.ScoringService,
	articleService *usecase.ArticleService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		leagueService:   leagueService,
		matchdayService: matchdayService,
		scheduleService: scheduleService,
		pickService:     pickService,
		ratingService:   ratingService,
		scoringService:  scoringService,
		articleService:  articleService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// resolvePrincipal upgrades the token identity to a league-scoped
// principal for the league in the request path. Non-members come back
// as ErrUnauthorized.
func (h *Handler) resolvePrincipal(ctx context.Context, r *http.Request) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}

	return h.leagueService.ResolvePrincipal(ctx, principal.UserID, strings.TrimSpace(r.PathValue("leagueID")))
}

func (h *Handler) resolveAdmin(ctx context.Context, r *http.Request) (user.Principal, error) {
	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		return user.Principal{}, err
	}
	if !principal.IsAdmin() {
		return user.Principal{}, fmt.Errorf("%w: admin role required", usecase.ErrUnauthorized)
	}

	return principal, nil
}
