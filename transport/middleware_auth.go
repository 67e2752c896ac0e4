package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rescueops/admin-console/application/session"
	"github.com/rescueops/admin-console/constant"
	utilsContext "github.com/rescueops/admin-console/utils/context"
	"github.com/rescueops/admin-console/utils/errors"
)

// AuthMiddleware validates the bearer token of every console request and
// embeds the acting admin into the context; the events screen records
// that actor as the event coordinator.
func AuthMiddleware(sessionApp session.SessionApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			actor, err := sessionApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := utilsContext.WithActor(r.Context(), actor.ID, actor.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required).
// Internal routes carry their own static key check.
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	return false
}
