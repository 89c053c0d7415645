package httpapi

import (
	"net/http"
	"testing"
)

func TestRecomputeLeagueEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/leagues", `{"name":"Lega Amici","team_names":["Alfa","Beta","Gamma"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create league: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		League struct {
			ID string `json:"id"`
		} `json:"league"`
	}
	decodeData(t, rec, &created)
	leagueID := created.League.ID

	rec = doJSON(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/matchdays",
		`{"deadline_end_at":"2026-03-06T20:00:00Z","slot_minutes":90}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("open matchday: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var opened struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &opened)

	rec = doJSON(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/recompute", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("recompute: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var recomputed struct {
		Status string `json:"status"`
	}
	decodeData(t, rec, &recomputed)
	if recomputed.Status != "ok" {
		t.Fatalf("expected recompute status ok, got %q", recomputed.Status)
	}

	// The rebuilt snapshot carries one provisional row per team.
	rec = doJSON(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/scores", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get scores: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var scores []struct {
		TeamName string `json:"team_name"`
		IsFinal  bool   `json:"is_final"`
	}
	decodeData(t, rec, &scores)
	if len(scores) != 3 {
		t.Fatalf("expected 3 score rows, got %d", len(scores))
	}
	for _, row := range scores {
		if row.IsFinal {
			t.Fatalf("open matchday snapshot must stay provisional, got final for %s", row.TeamName)
		}
	}
}
