// Package api exposes the HTTP surface: the gated chronology pages, the
// unlock and signout endpoints, the contact relay and the court lookup.
// Access-control failures are always erased into redirects here so the
// response never reveals which gate refused.
package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/courts"
	"github.com/courtprep/backend/internal/gate"
	"github.com/courtprep/backend/internal/mail"
	"github.com/courtprep/backend/internal/services"
)

// Handler carries the wired dependencies for every route.
type Handler struct {
	gate       *gate.Gate
	cases      *services.CaseService
	events     *services.EventService
	courts     *courts.Client
	mail       mail.Sender
	production bool
	// hearingZone renders stored hearing times back into form values.
	hearingZone *time.Location
	log         zerolog.Logger
}

func NewHandler(g *gate.Gate, cs *services.CaseService, es *services.EventService, cc *courts.Client, m mail.Sender, production bool, hearingZone *time.Location, log zerolog.Logger) *Handler {
	if hearingZone == nil {
		hearingZone = time.UTC
	}
	return &Handler{
		gate:        g,
		cases:       cs,
		events:      es,
		courts:      cc,
		mail:        m,
		production:  production,
		hearingZone: hearingZone,
		log:         log,
	}
}

// authorize runs the access gate and, on refusal, issues the deny redirect.
// Callers stop when ok is false.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (gate.Decision, bool) {
	d := h.gate.Authorize(r)
	if !d.Allowed() {
		respond.SeeOther(w, r, d.Reason.RedirectPath())
		return d, false
	}
	return d, true
}
