package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		header   string
		value    string
		wantCode int
	}{
		{name: "admin header", token: "s3cret", header: adminTokenHeader, value: "s3cret", wantCode: http.StatusOK},
		{name: "bearer", token: "s3cret", header: "Authorization", value: "Bearer s3cret", wantCode: http.StatusOK},
		{name: "wrong token", token: "s3cret", header: adminTokenHeader, value: "guess", wantCode: http.StatusUnauthorized},
		{name: "missing token", token: "s3cret", wantCode: http.StatusUnauthorized},
		{name: "not configured", token: "", header: adminTokenHeader, value: "anything", wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/match-dates/2026-10-20/generate", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()

			RequireAdminToken(tt.token, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestRequirePlayer(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = playerIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPut, "/v1/match-dates/2026-10-20/availability", nil)
	rec := httptest.NewRecorder()
	RequirePlayer(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without player header, got %d", rec.Code)
	}

	req.Header.Set(playerIDHeader, " pl-gk-01 ")
	rec = httptest.NewRecorder()
	RequirePlayer(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seen != "pl-gk-01" {
		t.Fatalf("expected trimmed player id in context, got code=%d id=%q", rec.Code, seen)
	}
}
