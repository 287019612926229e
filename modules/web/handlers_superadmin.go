package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novatech/tenantkit/pkg/tenant"
	"github.com/novatech/tenantkit/svc/tenants"
)

type dashboardResponse struct {
	TotalTenants int64           `json:"total_tenants"`
	TotalUsers   int64           `json:"total_users"`
	Tenants      []tenant.Tenant `json:"tenants"`
}

func (m *Module) handleSuperadminDashboard(w http.ResponseWriter, r *http.Request) {
	list, err := m.tenants.List(r.Context())
	if err != nil {
		m.logger.ErrorContext(r.Context(), "failed to list tenants", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	tenantCount, err := m.tenants.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	userCount, err := m.users.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, dashboardResponse{
		TotalTenants: tenantCount,
		TotalUsers:   userCount,
		Tenants:      list,
	})
}

func (m *Module) handleListTenants(w http.ResponseWriter, r *http.Request) {
	list, err := m.tenants.List(r.Context())
	if err != nil {
		m.logger.ErrorContext(r.Context(), "failed to list tenants", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (m *Module) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	t, err := m.tenants.Create(r.Context(),
		r.PostFormValue("name"),
		r.PostFormValue("email"),
		r.PostFormValue("subdomain"),
	)
	if err != nil {
		m.respondTenantError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (m *Module) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tenant id")
		return
	}
	t, err := m.tenants.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			respondError(w, http.StatusNotFound, "Tenant not found")
			return
		}
		m.logger.ErrorContext(r.Context(), "failed to get tenant", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (m *Module) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tenant id")
		return
	}
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	t, err := m.tenants.Update(r.Context(), id,
		r.PostFormValue("name"),
		r.PostFormValue("email"),
		r.PostFormValue("subdomain"),
	)
	if err != nil {
		m.respondTenantError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (m *Module) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tenant id")
		return
	}
	if err := m.tenants.Delete(r.Context(), id); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			respondError(w, http.StatusNotFound, "Tenant not found")
			return
		}
		m.logger.ErrorContext(r.Context(), "failed to delete tenant", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (m *Module) respondTenantError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		respondError(w, http.StatusNotFound, "Tenant not found")
	case errors.Is(err, tenants.ErrSubdomainTaken), errors.Is(err, tenants.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, tenants.ErrInvalidSubdomain), errors.Is(err, tenants.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		m.logger.ErrorContext(r.Context(), "tenant operation failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
