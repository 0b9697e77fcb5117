package api

import (
	"errors"
	"net/http"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/auth"
	"github.com/courtprep/backend/internal/gate"
)

// Unlock handles the dashboard unlock form. The first two gates (identity
// and beta flag) still apply; only the cookie gate is what this endpoint
// exists to satisfy.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	d := h.gate.Authorize(r)
	switch d.Reason {
	case gate.DenyNone, gate.DenyNotUnlocked:
		// eligible to attempt an unlock
	default:
		respond.SeeOther(w, r, d.Reason.RedirectPath())
		return
	}

	if err := r.ParseForm(); err != nil {
		respond.SeeOther(w, r, "/dashboard?unlock=wrong")
		return
	}

	err := h.gate.VerifyUnlockPassword(r.PostFormValue("password"))
	switch {
	case errors.Is(err, gate.ErrNotConfigured):
		h.log.Error().Msg("unlock attempted but no password is configured")
		respond.WriteInternalError(w, "Unlock is not configured")
		return
	case errors.Is(err, gate.ErrWrongPassword):
		respond.SeeOther(w, r, "/dashboard?unlock=wrong")
		return
	}

	http.SetCookie(w, gate.NewUnlockCookie(h.production))
	respond.SeeOther(w, r, chronologyPath)
}

// Signout clears the session and unlock cookies and lands on the home page.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     gate.UnlockCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	})
	respond.SeeOther(w, r, "/?signedout=1")
}
