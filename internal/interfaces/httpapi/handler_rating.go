package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/fantachat/fantachat-api/internal/usecase"
)

type ratingItemRequest struct {
	PlayerID string  `json:"player_id" validate:"required"`
	Vote     float64 `json:"vote" validate:"min=0,max=10"`
}

type upsertRatingsRequest struct {
	Items []ratingItemRequest `json:"items" validate:"required,min=1,dive"`
}

type setTop6Request struct {
	RealTeamIDs []string `json:"real_team_ids" validate:"required,len=6,dive,required"`
}

type fixturePairRequest struct {
	HomeClubID string `json:"home_club_id" validate:"required"`
	AwayClubID string `json:"away_club_id" validate:"required"`
}

type setFixturesRequest struct {
	Items []fixturePairRequest `json:"items" validate:"required,min=1,dive"`
}

type pickedPlayerDTO struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Vote     *float64 `json:"vote,omitempty"`
}

type top6ClubDTO struct {
	Rank int    `json:"rank"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fixtureDTO struct {
	Position int    `json:"position"`
	HomeID   string `json:"home_club_id"`
	HomeName string `json:"home_club_name"`
	AwayID   string `json:"away_club_id"`
	AwayName string `json:"away_club_name"`
}

func (h *Handler) GetPickedPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPickedPlayers")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	picked, err := h.ratingService.PickedPlayers(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get picked players failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickedPlayerDTO, 0, len(picked))
	for _, pp := range picked {
		items = append(items, pickedPlayerDTO{
			PlayerID: pp.Player.ID,
			Name:     pp.Player.Name,
			Role:     pp.Player.Role,
			Vote:     pp.Vote,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertRatings")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertRatingsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]usecase.RatingInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.RatingInput{PlayerID: item.PlayerID, Vote: item.Vote})
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	count, err := h.ratingService.UpsertBulk(ctx, principal.LeagueID, matchdayID, items)
	if err != nil {
		h.logger.WarnContext(ctx, "upsert ratings failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"updated": count})
}

func (h *Handler) GetTop6(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTop6")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	clubs, err := h.ratingService.GetTop6(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get top6 failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]top6ClubDTO, 0, len(clubs))
	for _, club := range clubs {
		items = append(items, top6ClubDTO{Rank: club.Rank, ID: club.Club.ID, Name: club.Club.Name})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetTop6(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTop6")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setTop6Request
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	if err := h.ratingService.SetTop6(ctx, principal.LeagueID, matchdayID, req.RealTeamIDs); err != nil {
		h.logger.WarnContext(ctx, "set top6 failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"count": len(req.RealTeamIDs)})
}

func (h *Handler) SetFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetFixtures")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setFixturesRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pairs := make([]usecase.FixtureInput, 0, len(req.Items))
	for _, item := range req.Items {
		pairs = append(pairs, usecase.FixtureInput{HomeClubID: item.HomeClubID, AwayClubID: item.AwayClubID})
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	if err := h.ratingService.SetFixtures(ctx, principal.LeagueID, matchdayID, pairs); err != nil {
		h.logger.WarnContext(ctx, "set fixtures failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"count": len(pairs)})
}

func (h *Handler) GetFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixtures")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	fixtures, err := h.ratingService.ListFixtures(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixtures failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureDTO{
			Position: f.Position,
			HomeID:   f.Home.ID,
			HomeName: f.Home.Name,
			AwayID:   f.Away.ID,
			AwayName: f.Away.Name,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
