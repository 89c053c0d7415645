package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerLeagueRoutes(mux, handler, verifier)
	registerMatchdayRoutes(mux, handler, verifier)
	registerScheduleRoutes(mux, handler, verifier)
	registerPickRoutes(mux, handler, verifier)
	registerRatingRoutes(mux, handler, verifier)
	registerScoringRoutes(mux, handler, verifier)
	registerArticleRoutes(mux, handler, verifier)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/invites/claim", RequireAuth(verifier, http.HandlerFunc(handler.ClaimInvite)))
	mux.Handle("PUT /v1/me/active-league", RequireAuth(verifier, http.HandlerFunc(handler.SetActiveLeague)))
}

func registerMatchdayRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/current", RequireAuth(verifier, http.HandlerFunc(handler.GetCurrentMatchday)))
	mux.Handle("POST /v1/leagues/{leagueID}/matchdays", RequireAuth(verifier, http.HandlerFunc(handler.OpenMatchday)))
	mux.Handle("POST /v1/leagues/{leagueID}/matchdays/{matchdayID}/close", RequireAuth(verifier, http.HandlerFunc(handler.CloseMatchday)))
	mux.Handle("PUT /v1/leagues/{leagueID}/matchdays/{matchdayID}/settings", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMatchdaySettings)))
}

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/matchdays/{matchdayID}/schedule", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/schedule", RequireAuth(verifier, http.HandlerFunc(handler.GetSchedule)))
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/schedule/recap", RequireAuth(verifier, http.HandlerFunc(handler.GetScheduleRecap)))
}

func registerPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/matchdays/{matchdayID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SavePicks)))
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.GetMyLineup)))
}

func registerRatingRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/picked-players", RequireAuth(verifier, http.HandlerFunc(handler.GetPickedPlayers)))
	mux.Handle("PUT /v1/leagues/{leagueID}/matchdays/{matchdayID}/ratings", RequireAuth(verifier, http.HandlerFunc(handler.UpsertRatings)))
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/top6", RequireAuth(verifier, http.HandlerFunc(handler.GetTop6)))
	mux.Handle("PUT /v1/leagues/{leagueID}/matchdays/{matchdayID}/top6", RequireAuth(verifier, http.HandlerFunc(handler.SetTop6)))
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/fixtures", RequireAuth(verifier, http.HandlerFunc(handler.GetFixtures)))
	mux.Handle("PUT /v1/leagues/{leagueID}/matchdays/{matchdayID}/fixtures", RequireAuth(verifier, http.HandlerFunc(handler.SetFixtures)))
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/matchdays/{matchdayID}/scores", RequireAuth(verifier, http.HandlerFunc(handler.GetMatchdayScores)))
	mux.Handle("GET /v1/leagues/{leagueID}/table", RequireAuth(verifier, http.HandlerFunc(handler.GetLeagueTable)))
	mux.Handle("GET /v1/leagues/{leagueID}/series", RequireAuth(verifier, http.HandlerFunc(handler.GetCumulativeSeries)))
	mux.Handle("GET /v1/leagues/{leagueID}/me/season-stats", RequireAuth(verifier, http.HandlerFunc(handler.GetMySeasonStats)))
	mux.Handle("POST /v1/leagues/{leagueID}/recompute", RequireAuth(verifier, http.HandlerFunc(handler.RecomputeLeague)))
}

func registerArticleRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/matchdays/{matchdayID}/article", RequireAuth(verifier, http.HandlerFunc(handler.GenerateArticle)))
	mux.Handle("GET /v1/leagues/{leagueID}/articles", RequireAuth(verifier, http.HandlerFunc(handler.ListArticles)))
}
