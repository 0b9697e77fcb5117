package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/export"
	"github.com/courtprep/backend/internal/model"
	"github.com/courtprep/backend/internal/services"
	"github.com/courtprep/backend/internal/web"
)

const chronologyPath = "/dashboard/chronology"

func casePath(caseID string) string {
	return chronologyPath + "/cases/" + caseID
}

// CaseList renders the chronology landing page with the caller's cases.
func (h *Handler) CaseList(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}

	list, err := h.cases.ListCases(r.Context(), d.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", d.UserID).Msg("case list failed")
		respond.WriteInternalError(w, "Failed to load cases")
		return
	}

	if err := web.CaseList(w, web.CaseListData{Email: d.Email, Cases: list}); err != nil {
		h.log.Error().Err(err).Msg("case list render failed")
	}
}

// CreateCase handles the new-case form. A title that trims to empty is a
// silent no-op: the redirect is the same either way.
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		respond.SeeOther(w, r, chronologyPath)
		return
	}

	c, err := h.cases.CreateCase(r.Context(), d.UserID, r.PostFormValue("title"))
	if err != nil {
		if !errors.Is(err, model.ErrValidation) {
			h.log.Error().Err(err).Str("user_id", d.UserID).Msg("case create failed")
		}
		respond.SeeOther(w, r, chronologyPath)
		return
	}
	respond.SeeOther(w, r, casePath(c.CaseID))
}

// CaseDetail renders a single case with its ordered event groups.
func (h *Handler) CaseDetail(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["caseId"]

	c, dated, undated, err := h.cases.Chronology(r.Context(), d.UserID, caseID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.log.Error().Err(err).Str("case_id", caseID).Msg("case load failed")
		}
		respond.SeeOther(w, r, chronologyPath)
		return
	}

	data := web.CaseDetailData{
		Case:             c,
		Dated:            dated,
		Undated:          undated,
		HearingLocal:     h.hearingLocal(c.Heading.HearingTime),
		ProceedingsLines: strings.Join(c.Heading.ProceedingsLines, "\n"),
	}
	if err := web.CaseDetail(w, data); err != nil {
		h.log.Error().Err(err).Str("case_id", caseID).Msg("case detail render failed")
	}
}

// SaveHeading stores the caption block from the heading form.
func (h *Handler) SaveHeading(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["caseId"]
	if err := r.ParseForm(); err != nil {
		respond.SeeOther(w, r, casePath(caseID))
		return
	}

	in := services.HeadingInput{
		CourtName:          r.PostFormValue("court_name"),
		CourtSlug:          r.PostFormValue("court_slug"),
		CaseNumber:         r.PostFormValue("case_number"),
		ApplicantName:      r.PostFormValue("applicant_name"),
		RespondentName:     r.PostFormValue("respondent_name"),
		HearingTitle:       r.PostFormValue("hearing_title"),
		HearingDateTime:    r.PostFormValue("hearing_datetime"),
		ChildrenNote:       r.PostFormValue("children_note"),
		ProceedingsHeading: r.PostFormValue("proceedings_heading"),
		ProceedingsLines:   r.PostFormValue("proceedings_lines"),
	}

	if err := h.cases.SaveHeading(r.Context(), d.UserID, caseID, in); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.SeeOther(w, r, chronologyPath)
			return
		}
		h.log.Error().Err(err).Str("case_id", caseID).Msg("heading save failed")
	}
	respond.SeeOther(w, r, casePath(caseID))
}

// DeleteCase removes a case and all its events when the typed confirmation
// matches exactly. Anything else is a silent no-op back to the case page.
func (h *Handler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["caseId"]
	if err := r.ParseForm(); err != nil {
		respond.SeeOther(w, r, casePath(caseID))
		return
	}

	err := h.cases.DeleteCase(r.Context(), d.UserID, caseID, r.PostFormValue("confirm"))
	if err != nil {
		if !errors.Is(err, model.ErrValidation) {
			h.log.Error().Err(err).Str("case_id", caseID).Msg("case delete failed")
		}
		respond.SeeOther(w, r, casePath(caseID))
		return
	}
	respond.SeeOther(w, r, chronologyPath)
}

// Export renders the print-formatted chronology document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	d, ok := h.authorize(w, r)
	if !ok {
		return
	}
	caseID := mux.Vars(r)["caseId"]

	c, dated, undated, err := h.cases.Chronology(r.Context(), d.UserID, caseID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.log.Error().Err(err).Str("case_id", caseID).Msg("export load failed")
		}
		respond.SeeOther(w, r, chronologyPath)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.Render(w, c, dated, undated); err != nil {
		h.log.Error().Err(err).Str("case_id", caseID).Msg("export render failed")
	}
}

func (h *Handler) hearingLocal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(h.hearingZone).Format("2006-01-02T15:04")
}
