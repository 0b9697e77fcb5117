package api

import (
	"net/http"

	"github.com/courtprep/backend/internal/api/respond"
	"github.com/courtprep/backend/internal/model"
)

// Courts proxies the court-register search for the heading form's
// autocomplete. It never fails: bad queries and upstream errors both come
// back as an empty result list.
func (h *Handler) Courts(w http.ResponseWriter, r *http.Request) {
	results := h.courts.Search(r.Context(), r.URL.Query().Get("q"))
	respond.WriteJSON(w, http.StatusOK, map[string][]model.Court{"results": results})
}
