package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/next", handler.NextMatch)
	mux.HandleFunc("GET /v1/matches/recent", handler.RecentResults)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatchDetail)
	mux.HandleFunc("POST /v1/matches/{matchID}/predictions", handler.SubmitPrediction)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/goals", handler.ListGoals)
	mux.HandleFunc("GET /v1/predictions", handler.ListPredictions)
	mux.HandleFunc("GET /v1/rankings/scorers", handler.ScorerRanking)
	mux.HandleFunc("GET /v1/rankings/teams", handler.TeamStandings)
	mux.HandleFunc("GET /v1/rankings/predictions", handler.PredictionRanking)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminKey string) {
	mux.Handle("GET /v1/admin/draft", RequireAdminKey(adminKey, http.HandlerFunc(handler.GetDraft)))
	mux.Handle("POST /v1/admin/draft/reset", RequireAdminKey(adminKey, http.HandlerFunc(handler.ResetDraft)))
	mux.Handle("PATCH /v1/admin/draft/matches/{matchID}", RequireAdminKey(adminKey, http.HandlerFunc(handler.PatchDraftMatch)))
	mux.Handle("PUT /v1/admin/draft/goals", RequireAdminKey(adminKey, http.HandlerFunc(handler.UpsertDraftGoal)))
	mux.Handle("DELETE /v1/admin/draft/goals/{goalKey}", RequireAdminKey(adminKey, http.HandlerFunc(handler.DeleteDraftGoal)))
	mux.Handle("POST /v1/admin/draft/commit", RequireAdminKey(adminKey, http.HandlerFunc(handler.CommitDraft)))
	mux.Handle("POST /v1/admin/reload", RequireAdminKey(adminKey, http.HandlerFunc(handler.ReloadSnapshot)))
}
