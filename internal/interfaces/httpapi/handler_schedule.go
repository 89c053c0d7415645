package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
)

type scheduleEntryDTO struct {
	TeamID          string     `json:"team_id"`
	TeamName        string     `json:"team_name"`
	SlotStartAt     time.Time  `json:"slot_start_at"`
	SlotEndAt       time.Time  `json:"slot_end_at"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	SubmittedStatus string     `json:"submitted_status"`
}

type generateScheduleResponse struct {
	MatchdayID string             `json:"matchday_id"`
	SlotCount  int                `json:"slot_count"`
	Slots      []scheduleEntryDTO `json:"slots"`
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	slots, err := h.scheduleService.Generate(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scheduleEntryDTO, 0, len(slots))
	for _, slot := range slots {
		items = append(items, scheduleEntryDTO{
			TeamID:          slot.TeamID,
			TeamName:        slot.TeamName,
			SlotStartAt:     slot.StartAt,
			SlotEndAt:       slot.EndAt,
			SubmittedStatus: string(pickschedule.StatusNone),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, generateScheduleResponse{
		MatchdayID: matchdayID,
		SlotCount:  len(items),
		Slots:      items,
	})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	entries, err := h.scheduleService.GetWithStatus(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get schedule failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scheduleEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, scheduleEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetScheduleRecap serves the copy-pasteable chat message as plain text,
// not wrapped in the JSON envelope.
func (h *Handler) GetScheduleRecap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScheduleRecap")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	recap, err := h.scheduleService.Recap(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get schedule recap failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(recap))
}

func scheduleEntryToDTO(entry pickschedule.Entry) scheduleEntryDTO {
	return scheduleEntryDTO{
		TeamID:          entry.TeamID,
		TeamName:        entry.TeamName,
		SlotStartAt:     entry.SlotStartAt,
		SlotEndAt:       entry.SlotEndAt,
		SubmittedAt:     entry.SubmittedAt,
		SubmittedStatus: string(entry.SubmittedStatus),
	}
}
