package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/fantachat/fantachat-api/internal/usecase"
)

type savePicksRequest struct {
	GoalkeeperID string `json:"gk_player_id" validate:"required"`
	DefenderID   string `json:"def_player_id" validate:"required"`
	MidfielderID string `json:"mid_player_id" validate:"required"`
	ForwardID    string `json:"fwd_player_id" validate:"required"`
}

type savePicksResponse struct {
	TeamID          string    `json:"team_id"`
	GoalkeeperID    string    `json:"gk_player_id"`
	DefenderID      string    `json:"def_player_id"`
	MidfielderID    string    `json:"mid_player_id"`
	ForwardID       string    `json:"fwd_player_id"`
	SubmittedAt     time.Time `json:"submitted_at"`
	SubmittedStatus string    `json:"submitted_status"`
}

type lineupPlayerDTO struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Vote     *float64 `json:"vote,omitempty"`
}

type lineupDTO struct {
	Players []lineupPlayerDTO `json:"players"`
	Total   float64           `json:"total"`
}

func (h *Handler) SavePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePicks")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req savePicksRequest
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
	saved, status, err := h.pickService.Save(ctx, principal, matchdayID, usecase.SavePicksInput{
		GoalkeeperID: req.GoalkeeperID,
		DefenderID:   req.DefenderID,
		MidfielderID: req.MidfielderID,
		ForwardID:    req.ForwardID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save picks failed", "team_id", principal.TeamID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, savePicksResponse{
		TeamID:          saved.TeamID,
		GoalkeeperID:    saved.GKPlayerID,
		DefenderID:      saved.DefPlayerID,
		MidfielderID:    saved.MidPlayerID,
		ForwardID:       saved.FwdPlayerID,
		SubmittedAt:     saved.SubmittedAt,
		SubmittedStatus: string(status),
	})
}

func (h *Handler) GetMyLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyLineup")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	lineup, exists, err := h.scoringService.MyLineup(ctx, principal, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "team_id", principal.TeamID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	players := make([]lineupPlayerDTO, 0, len(lineup.Players))
	for _, lp := range lineup.Players {
		players = append(players, lineupPlayerDTO{
			PlayerID: lp.Player.ID,
			Name:     lp.Player.Name,
			Role:     lp.Player.Role,
			Vote:     lp.Vote,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, lineupDTO{Players: players, Total: lineup.Total})
}
