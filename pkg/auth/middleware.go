package auth

import "net/http"

// RequireRole guards a route subtree with a minimum role. Missing
// principal and insufficient role are distinct outcomes to the caller:
// 401 asks for credentials, 403 says the authenticated identity is not
// permitted. They must never be conflated.
func RequireRole(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}
			if !principal.Role.Satisfies(required) {
				http.Error(w, ErrForbidden.Error(), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
