package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
	"github.com/novatech/tenantkit/svc/users"
)

type adminDashboardResponse struct {
	TotalUsers int64       `json:"total_users"`
	Users      []auth.User `json:"users"`
}

func (m *Module) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	list, err := m.users.List(r.Context())
	if err != nil {
		m.logger.ErrorContext(r.Context(), "failed to list users", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	count, err := m.users.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, adminDashboardResponse{
		TotalUsers: count,
		Users:      list,
	})
}

func (m *Module) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := m.users.List(r.Context())
	if err != nil {
		m.logger.ErrorContext(r.Context(), "failed to list users", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (m *Module) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	u, err := m.users.Create(r.Context(),
		r.PostFormValue("full_name"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
		auth.Role(r.PostFormValue("role")),
	)
	if err != nil {
		m.respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

func (m *Module) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	u, err := m.users.Update(r.Context(), id, users.UpdateRequest{
		FullName: r.PostFormValue("full_name"),
		Password: r.PostFormValue("password"),
		Role:     auth.Role(r.PostFormValue("role")),
	})
	if err != nil {
		m.respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (m *Module) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := m.users.Delete(r.Context(), id); err != nil {
		m.respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (m *Module) respondUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrCrossTenant):
		// Deny with the same status as a missing record so a tenant admin
		// cannot probe for ids belonging to other tenants.
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrEmailExists):
		respondError(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, users.ErrSuperadminRole), errors.Is(err, users.ErrInvalidRole),
		errors.Is(err, users.ErrInvalidEmail), errors.Is(err, users.ErrWeakPassword):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tenant.ErrNoTenantInContext):
		respondError(w, http.StatusNotFound, "Tenant not found")
	default:
		m.logger.ErrorContext(r.Context(), "user operation failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
