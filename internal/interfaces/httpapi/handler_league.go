package httpapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/fantachat/fantachat-api/internal/domain/membership"
	"github.com/fantachat/fantachat-api/internal/usecase"
)

type createLeagueRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	TeamNames []string `json:"team_names" validate:"required,min=2,max=20,dive,required"`
}

type claimInviteRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

type setActiveLeagueRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
}

type leagueDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type inviteDTO struct {
	Code    string `json:"code"`
	TeamID  string `json:"team_id"`
	Claimed bool   `json:"claimed"`
}

type createLeagueResponse struct {
	League  leagueDTO   `json:"league"`
	Teams   []teamDTO   `json:"teams"`
	Invites []inviteDTO `json:"invites"`
}

type membershipDTO struct {
	LeagueID string `json:"league_id"`
	TeamID   string `json:"team_id"`
	Role     string `json:"role"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
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

	result, err := h.leagueService.CreateWithTeams(ctx, usecase.CreateLeagueInput{
		Name:      req.Name,
		TeamNames: req.TeamNames,
		CreatedBy: principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	teams := make([]teamDTO, 0, len(result.Teams))
	for _, t := range result.Teams {
		teams = append(teams, teamDTO{ID: t.ID, Name: t.Name})
	}
	invites := make([]inviteDTO, 0, len(result.Invites))
	for _, invite := range result.Invites {
		invites = append(invites, inviteDTO{Code: invite.Code, TeamID: invite.TeamID, Claimed: invite.Claimed()})
	}

	writeSuccess(ctx, w, http.StatusCreated, createLeagueResponse{
		League: leagueDTO{
			ID:        result.League.ID,
			Name:      result.League.Name,
			CreatedBy: result.League.CreatedBy,
			CreatedAt: result.League.CreatedAt,
		},
		Teams:   teams,
		Invites: invites,
	})
}

func (h *Handler) ClaimInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req claimInviteRequest
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

	seat, err := h.leagueService.ClaimInvite(ctx, principal.UserID, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "claim invite failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membershipToDTO(seat))
}

func (h *Handler) SetActiveLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetActiveLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setActiveLeagueRequest
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

	if err := h.leagueService.SetActiveLeague(ctx, principal.UserID, req.LeagueID); err != nil {
		h.logger.WarnContext(ctx, "set active league failed", "user_id", principal.UserID, "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"active_league_id": req.LeagueID})
}

func membershipToDTO(seat membership.Membership) membershipDTO {
	return membershipDTO{
		LeagueID: seat.LeagueID,
		TeamID:   seat.TeamID,
		Role:     seat.Role,
	}
}
