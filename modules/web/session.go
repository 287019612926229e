package web

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
)

// sessionClaims is the JWT payload of the session cookie. The credential
// is never part of the session; the cookie only proves a past successful
// authentication.
type sessionClaims struct {
	Email       string     `json:"email"`
	Role        auth.Role  `json:"role"`
	DisplayName string     `json:"name"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

func (m *Module) issueSession(w http.ResponseWriter, principal *auth.Principal) error {
	now := time.Now()
	claims := sessionClaims{
		Email:       principal.Email,
		Role:        principal.Role,
		DisplayName: principal.DisplayName,
		TenantID:    principal.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.SessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.SessionSecret))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Module) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session restores the principal from the session cookie. A session is
// only honored in the realm it was issued for: a tenant session requires
// the ambient tenant to match, a superadmin session is valid only in the
// global realm. Anything else proceeds unauthenticated and is left to the
// route guards.
func (m *Module) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cfg.SessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		var claims sessionClaims
		token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(m.cfg.SessionSecret), nil
		})
		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		principal, ok := m.principalFromClaims(r, &claims)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

func (m *Module) principalFromClaims(r *http.Request, claims *sessionClaims) (*auth.Principal, bool) {
	ambient, inTenantRealm := tenant.FromContext(r.Context())

	if claims.TenantID == nil {
		if inTenantRealm || claims.Role != auth.RoleSuperadmin {
			return nil, false
		}
		return auth.NewSuperadminPrincipal(claims.Email, ""), true
	}

	if !inTenantRealm || ambient.ID != *claims.TenantID {
		return nil, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, false
	}
	return auth.NewTenantPrincipal(&auth.User{
		ID:       userID,
		Email:    claims.Email,
		FullName: claims.DisplayName,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, *claims.TenantID), true
}
