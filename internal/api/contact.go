package api

import (
	"encoding/json"
	"net/http"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/api/validate"
	"github.com/courtprep/backend/internal/model"
)

type contactRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Service          string `json:"service"`
	CourtType        string `json:"courtType"`
	Stage            string `json:"stage"`
	Urgency          string `json:"urgency"`
	HearingDate      string `json:"hearingDate"`
	CourtLocation    string `json:"courtLocation"`
	PreferredContact string `json:"preferredContact"`
	Message          string `json:"message"`
}

// Contact validates an enquiry and relays it. Rejections carry the single
// human-readable reason for the first failing field.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid request.")
		return
	}

	e := validate.TrimEnquiry(model.Enquiry{
		Name:             req.Name,
		Email:            req.Email,
		Service:          req.Service,
		CourtType:        req.CourtType,
		Stage:            req.Stage,
		Urgency:          req.Urgency,
		HearingDate:      req.HearingDate,
		CourtLocation:    req.CourtLocation,
		PreferredContact: req.PreferredContact,
		Message:          req.Message,
	})

	if err := validate.Enquiry(e); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.mail.SendEnquiry(r.Context(), e); err != nil {
		h.log.Error().Err(err).Msg("enquiry relay failed")
		respond.WriteInternalError(w, "Failed to send your enquiry. Please try again.")
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
