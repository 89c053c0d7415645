package httpapi

import (
	"net/http"
	"strings"

	"github.com/fantachat/fantachat-api/internal/domain/scoring"
)

type teamScoreDTO struct {
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	TotalScore float64 `json:"total_score"`
	IsFinal    bool    `json:"is_final"`
}

type tableRowDTO struct {
	Position   int     `json:"position"`
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	Played     int     `json:"played"`
	TotalScore float64 `json:"total_score"`
}

type seriesPointDTO struct {
	TeamID         string  `json:"team_id"`
	TeamName       string  `json:"team_name"`
	MatchdayNumber int     `json:"matchday_number"`
	Cumulative     float64 `json:"cumulative"`
}

type matchdayResultDTO struct {
	MatchdayNumber int     `json:"matchday_number"`
	Score          float64 `json:"score"`
	IsFinal        bool    `json:"is_final"`
}

type seasonStatsDTO struct {
	Rank      int                 `json:"rank"`
	TeamCount int                 `json:"team_count"`
	Total     float64             `json:"total"`
	Average   float64             `json:"average"`
	Best      float64             `json:"best"`
	Worst     float64             `json:"worst"`
	Played    int                 `json:"played"`
	History   []matchdayResultDTO `json:"history"`
}

func (h *Handler) GetMatchdayScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchdayScores")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchdayID := strings.TrimSpace(r.PathValue("matchdayID"))
	scores, err := h.scoringService.LiveScores(ctx, principal.LeagueID, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchday scores failed", "league_id", principal.LeagueID, "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, teamScoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoringService.Table(ctx, principal.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league table failed", "league_id", principal.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tableRowDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, tableRowDTO{
			Position:   i + 1,
			TeamID:     row.TeamID,
			TeamName:   row.TeamName,
			Played:     row.Played,
			TotalScore: row.TotalScore,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCumulativeSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCumulativeSeries")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.scoringService.CumulativeSeries(ctx, principal.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get cumulative series failed", "league_id", principal.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seriesPointDTO, 0, len(points))
	for _, point := range points {
		items = append(items, seriesPointDTO{
			TeamID:         point.TeamID,
			TeamName:       point.TeamName,
			MatchdayNumber: point.MatchdayNumber,
			Cumulative:     point.Cumulative,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMySeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySeasonStats")
	defer span.End()

	principal, err := h.resolvePrincipal(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.scoringService.SeasonStats(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get season stats failed", "team_id", principal.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	history := make([]matchdayResultDTO, 0, len(stats.History))
	for _, result := range stats.History {
		history = append(history, matchdayResultDTO{
			MatchdayNumber: result.MatchdayNumber,
			Score:          result.Score,
			IsFinal:        result.IsFinal,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, seasonStatsDTO{
		Rank:      stats.Rank,
		TeamCount: stats.TeamCount,
		Total:     stats.Total,
		Average:   stats.Average,
		Best:      stats.Best,
		Worst:     stats.Worst,
		Played:    stats.Played,
		History:   history,
	})
}

// RecomputeLeague rebuilds every matchday snapshot of the league, for
// example after an admin corrects past votes.
func (h *Handler) RecomputeLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeLeague")
	defer span.End()

	principal, err := h.resolveAdmin(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.RecomputeLeague(ctx, principal.LeagueID); err != nil {
		h.logger.WarnContext(ctx, "recompute league failed", "league_id", principal.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func teamScoreToDTO(score scoring.TeamScore) teamScoreDTO {
	return teamScoreDTO{
		TeamID:     score.TeamID,
		TeamName:   score.TeamName,
		TotalScore: score.TotalScore,
		IsFinal:    score.IsFinal,
	}
}
