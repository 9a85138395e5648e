package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/match-dates", OptionalPlayer(http.HandlerFunc(handler.ListMatchDates)))
	mux.Handle("PUT /v1/match-dates/{date}/availability", RequirePlayer(http.HandlerFunc(handler.SubmitAvailability)))
	mux.HandleFunc("GET /v1/match-dates/{date}/teams", handler.GetPublishedTeams)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("GET /v1/admin/match-dates/{date}/teams", RequireAdminToken(adminToken, http.HandlerFunc(handler.PreviewTeams)))
	mux.Handle("POST /v1/admin/match-dates/{date}/generate", RequireAdminToken(adminToken, http.HandlerFunc(handler.GenerateTeams)))
	mux.Handle("POST /v1/admin/match-dates/{date}/publish", RequireAdminToken(adminToken, http.HandlerFunc(handler.PublishTeams)))
	mux.Handle("GET /v1/admin/match-dates/{date}/dispatches", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListDispatches)))
}
