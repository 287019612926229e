package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
	"github.com/novatech/tenantkit/svc/tenants"
	"github.com/novatech/tenantkit/svc/users"
)

// Landing pages per identity class. The login response carries the target
// so the client performs the redirect itself.
const (
	redirectSuperadmin = "/superadmin/dashboard"
	redirectAdmin      = "/admin/dashboard"
	redirectHome       = "/home"
)

func redirectFor(class auth.Class) string {
	switch class {
	case auth.ClassSuperadmin:
		return redirectSuperadmin
	case auth.ClassTenantAdmin:
		return redirectAdmin
	default:
		return redirectHome
	}
}

type loginResponse struct {
	Redirect    string     `json:"redirect"`
	DisplayName string     `json:"display_name"`
	Role        auth.Role  `json:"role"`
	Class       auth.Class `json:"class"`
}

func (m *Module) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	principal, err := m.resolver.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrPrincipalNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		m.logger.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := m.issueSession(w, principal); err != nil {
		m.logger.ErrorContext(r.Context(), "failed to issue session", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Redirect:    redirectFor(principal.Class),
		DisplayName: principal.DisplayName,
		Role:        principal.Role,
		Class:       principal.Class,
	})
}

func (m *Module) handleLogout(w http.ResponseWriter, r *http.Request) {
	m.clearSession(w)
	respondJSON(w, http.StatusOK, map[string]string{"redirect": "/login"})
}

// handleSignup registers in whichever realm the request arrived:
// a tenant subdomain enrolls an end user there, the apex registers a new
// tenant together with its admin.
func (m *Module) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	if _, ok := tenant.FromContext(r.Context()); ok {
		m.signupUser(w, r)
		return
	}
	m.signupTenant(w, r)
}

func (m *Module) signupUser(w http.ResponseWriter, r *http.Request) {
	u, err := m.users.Register(r.Context(),
		r.PostFormValue("full_name"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailExists):
			respondError(w, http.StatusConflict, "Email is already registered")
		case errors.Is(err, users.ErrInvalidEmail), errors.Is(err, users.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			m.logger.ErrorContext(r.Context(), "user signup failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

func (m *Module) signupTenant(w http.ResponseWriter, r *http.Request) {
	t, err := m.tenants.Register(r.Context(), tenants.RegisterRequest{
		TenantName: r.PostFormValue("tenant_name"),
		Subdomain:  r.PostFormValue("subdomain"),
		FullName:   r.PostFormValue("full_name"),
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrSubdomainTaken), errors.Is(err, tenants.ErrEmailTaken):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, tenants.ErrInvalidSubdomain), errors.Is(err, tenants.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			m.logger.ErrorContext(r.Context(), "tenant signup failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (m *Module) handleHome(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"display_name": principal.DisplayName,
		"email":        principal.Email,
		"role":         principal.Role,
		"class":        principal.Class,
	})
}
