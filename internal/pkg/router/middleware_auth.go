package router

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mabinihs/portal/internal/pkg/jwt"
)

// ServiceAuth requires a Bearer service token that grants scope. It is
// attached per route to the relay endpoints.
func (r *Router) ServiceAuth(scope string) Middleware {
	verifier := r.jwt

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if verifier == nil {
				writeJSON(w, errorResponse{Message: "Service authentication is not configured"}, http.StatusServiceUnavailable)
				return
			}

			p := strings.Fields(req.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				if !errors.Is(err, jwt.ErrTokenExpired) {
					slog.WarnContext(req.Context(), "service token rejected", "error", err)
				}
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			if !claims.HasScope(scope) {
				writeJSON(w, errorResponse{Message: "Token does not allow this operation"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, req.WithContext(jwt.SetAuth(req.Context(), claims)))
		})
	}
}
