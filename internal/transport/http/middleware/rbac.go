package middleware

import (
	"net/http"

	"github.com/avercheq/taskhive/internal/domain"
)

// RequireRole gates a subtree behind an exact role.
// Assumes Auth() has already injected the role into context.
func RequireRole(required domain.Role, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				// Auth not applied or context missing
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			if !domain.IsValidRole(role) {
				writeErr(w, r, domain.ErrForbidden())
				return
			}

			if role != string(required) {
				writeErr(w, r, domain.ErrInsufficientRole(string(required)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
