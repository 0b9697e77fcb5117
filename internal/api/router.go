package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtprep/backend/internal/api/recovery"
)

// NewRouter wires every route. The chronology pages live under
// /dashboard/chronology and each handler re-runs the access gate itself.
func NewRouter(h *Handler, health *HealthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(recovery.Middleware)

	// Public JSON endpoints.
	r.HandleFunc("/api/health", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/api/health/db", health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/api/contact", h.Contact).Methods(http.MethodPost)
	r.HandleFunc("/api/courts", h.Courts).Methods(http.MethodGet)

	// Session endpoints.
	r.HandleFunc("/dashboard/unlock", h.Unlock).Methods(http.MethodPost)
	r.HandleFunc("/signout", h.Signout).Methods(http.MethodPost)

	// Gated chronology pages.
	c := r.PathPrefix(chronologyPath).Subrouter()
	c.HandleFunc("", h.CaseList).Methods(http.MethodGet)
	c.HandleFunc("/cases", h.CreateCase).Methods(http.MethodPost)
	c.HandleFunc("/cases/{caseId}", h.CaseDetail).Methods(http.MethodGet)
	c.HandleFunc("/cases/{caseId}/heading", h.SaveHeading).Methods(http.MethodPost)
	c.HandleFunc("/cases/{caseId}/delete", h.DeleteCase).Methods(http.MethodPost)
	c.HandleFunc("/cases/{caseId}/export", h.Export).Methods(http.MethodGet)
	c.HandleFunc("/cases/{caseId}/events", h.AddEvent).Methods(http.MethodPost)
	c.HandleFunc("/cases/{caseId}/events/{eventId}", h.EventEditPage).Methods(http.MethodGet)
	c.HandleFunc("/cases/{caseId}/events/{eventId}", h.SaveEvent).Methods(http.MethodPost)
	c.HandleFunc("/cases/{caseId}/events/{eventId}/delete", h.DeleteEvent).Methods(http.MethodPost)

	return r
}
