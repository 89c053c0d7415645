package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/usecase"
)

type openMatchdayRequest struct {
	DeadlineEndAt *time.Time `json:"deadline_end_at"`
	SlotMinutes   int        `json:"slot_minutes" validate:"omitempty,min=1,max=1440"`
}

type updateMatchdaySettingsRequest struct {
	DeadlineEndAt time.Time `json:"deadline_end_at" validate:"required"`
	SlotMinutes   int       `json:"slot_minutes" validate:"required,min=1,max=1440"`
}

type matchdayDTO struct {
	ID            string     `json:"id"`
	LeagueID      string     `json:"league_id"`
	Number        int        `json:"number"`
	Status        string     `json:"status"`
	DeadlineEndAt *time.Time `json:"deadline_end_at,omitempty"`
	SlotMinutes   int        `json:"slot_minutes"`
}

func (h *Handler) GetCurrentMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentMatchday")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	md, exists, err := h.matchdayService.GetCurrent(ctx, principal.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get current matchday failed", "league_id", principal.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayToDTO(md))
}

func (h *Handler) OpenMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenMatchday")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req openMatchdayRequest
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

	md, err := h.matchdayService.Open(ctx, usecase.OpenMatchdayInput{
		LeagueID:      principal.LeagueID,
		DeadlineEndAt: req.DeadlineEndAt,
		SlotMinutes:   req.SlotMinutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "open matchday failed", "league_id", principal.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchdayToDTO(md))
}

func (h *Handler) CloseMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseMatchday")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	finalize := strings.EqualFold(r.URL.Query().Get("finalize"), "true")

	if err := h.matchdayService.Close(ctx, principal.LeagueID, matchdayID, finalize); err != nil {
		h.logger.WarnContext(ctx, "close matchday failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"matchday_id": matchdayID,
		"finalized":   finalize,
	})
}

func (h *Handler) UpdateMatchdaySettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchdaySettings")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	var req updateMatchdaySettingsRequest
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

	md, err := h.matchdayService.UpdateSettings(ctx, principal.LeagueID, matchdayID, req.DeadlineEndAt, req.SlotMinutes)
	if err != nil {
		h.logger.WarnContext(ctx, "update matchday settings failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayToDTO(md))
}

func matchdayToDTO(md matchday.Matchday) matchdayDTO {
	return matchdayDTO{
		ID:            md.ID,
		LeagueID:      md.LeagueID,
		Number:        md.Number,
		Status:        md.Status,
		DeadlineEndAt: md.DeadlineEndAt,
		SlotMinutes:   md.SlotMinutes,
	}
}
