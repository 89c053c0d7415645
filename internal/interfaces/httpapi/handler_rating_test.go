package httpapi

import (
	"net/http"
	"testing"
)

func TestFixturesEndpoints(t *testing.T) {
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

	rec = doJSON(t, router, http.MethodPut, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/fixtures",
		`{"items":[{"home_club_id":"club-int","away_club_id":"club-juv"},{"home_club_id":"club-mil","away_club_id":"club-nap"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set fixtures: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var saved struct {
		Count int `json:"count"`
	}
	decodeData(t, rec, &saved)
	if saved.Count != 2 {
		t.Fatalf("expected 2 fixtures saved, got %d", saved.Count)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/fixtures", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get fixtures: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var fixtures []struct {
		Position int    `json:"position"`
		HomeName string `json:"home_club_name"`
		AwayName string `json:"away_club_name"`
	}
	decodeData(t, rec, &fixtures)
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if fixtures[0].Position != 1 || fixtures[0].HomeName != "Inter" || fixtures[0].AwayName != "Juventus" {
		t.Fatalf("unexpected first fixture: %+v", fixtures[0])
	}

	rec = doJSON(t, router, http.MethodPut, "/v1/leagues/"+leagueID+"/matchdays/"+opened.ID+"/fixtures",
		`{"items":[{"home_club_id":"club-int","away_club_id":"club-int"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self-paired fixture: expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}
