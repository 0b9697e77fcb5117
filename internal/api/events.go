package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/services"
	"github.com/courtprep/backend/internal/web"
)

func eventInput(r *http.Request) services.EventInput {
	return services.EventInput{
		Date:        r.PostFormValue("event_date"),
		DateUnknown: r.PostFormValue("date_unknown") != "",
		Summary:     r.PostFormValue("summary"),
		Evidence:    r.PostFormValue("evidence"),
	}
}

// AddEvent appends an entry from the add-event form. An empty summary is a
// silent no-op; the response redirects back to the case either way.
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["caseId"]
	if err := r.ParseForm(); err != nil {
		respond.SeeOther(w, r, casePath(caseID))
		return
	}

	// Ownership check before the write: events carry no owner column.
	if _, err := h.cases.GetCase(r.Context(), d.UserID, caseID); err != nil {
		respond.SeeOther(w, r, chronologyPath)
		return
	}

	if _, err := h.events.AddEvent(r.Context(), caseID, eventInput(r)); err != nil {
		if !errors.Is(err, model.ErrValidation) {
			h.log.Error().Err(err).Str("case_id", caseID).Msg("event create failed")
		}
	}
	respond.SeeOther(w, r, casePath(caseID))
}

// EventEditPage renders the edit form for one entry.
func (h *Handler) EventEditPage(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	caseID, eventID := vars["caseId"], vars["eventId"]

	c, err := h.cases.GetCase(r.Context(), d.UserID, caseID)
	if err != nil {
		respond.SeeOther(w, r, chronologyPath)
		return
	}
	e, err := h.events.GetEvent(r.Context(), caseID, eventID)
	if err != nil {
		respond.SeeOther(w, r, casePath(caseID))
		return
	}

	if err := web.EventEdit(w, web.EventEditData{Case: c, Event: e}); err != nil {
		h.log.Error().Err(err).Str("event_id", eventID).Msg("event edit render failed")
	}
}

// SaveEvent applies the edit form. The update is scoped to the
// (event, case) pair from the URL; a mismatch changes nothing.
func (h *Handler) SaveEvent(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	caseID, eventID := vars["caseId"], vars["eventId"]
	if err := r.ParseForm(); err != nil {
		respond.SeeOther(w, r, casePath(caseID))
		return
	}

	if _, err := h.cases.GetCase(r.Context(), d.UserID, caseID); err != nil {
		respond.SeeOther(w, r, chronologyPath)
		return
	}

	if err := h.events.EditEvent(r.Context(), caseID, eventID, eventInput(r)); err != nil {
		if !errors.Is(err, model.ErrValidation) && !errors.Is(err, model.ErrNotFound) {
			h.log.Error().Err(err).Str("event_id", eventID).Msg("event update failed")
		}
	}
	respond.SeeOther(w, r, casePath(caseID))
}

// DeleteEvent removes one entry. Unknown ids are a no-op.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	caseID, eventID := vars["caseId"], vars["eventId"]

	if _, err := h.cases.GetCase(r.Context(), d.UserID, caseID); err != nil {
		respond.SeeOther(w, r, chronologyPath)
		return
	}

	if err := h.events.DeleteEvent(r.Context(), eventID); err != nil {
		h.log.Error().Err(err).Str("event_id", eventID).Msg("event delete failed")
	}
	respond.SeeOther(w, r, casePath(caseID))
}
