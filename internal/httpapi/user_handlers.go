package httpapi

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/toonami2907/showcase-api/internal/audit"
	"github.com/toonami2907/showcase-api/internal/ids"
)

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	user, ok := principal(w, r)
	if !ok {
		return
	}

	dashboard, err := a.projects.Dashboard(r.Context(), user.ID)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, r, http.MethodPatch)
		return
	}
	user, ok := principal(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			writeError(w, r, http.StatusBadRequest, "a valid email address is required")
			return
		}
	}

	profile, err := a.projects.UpdateProfile(r.Context(), user.ID, req.Name, req.Email)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "profile.updated", nil)

	writeJSON(w, http.StatusOK, profile)
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := principal(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	if !ids.Valid(id) {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	profile, err := a.projects.Profile(r.Context(), id)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
