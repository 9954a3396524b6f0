package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/farhanmaulana/clinic-orders/application/user"
	"github.com/farhanmaulana/clinic-orders/constant"
	ctxutil "github.com/farhanmaulana/clinic-orders/utils/context"
	"github.com/farhanmaulana/clinic-orders/utils/errors"
)

// AuthMiddleware validates JWT sessions using UserApp and embeds the
// representative id into the request context. Public and internal endpoints
// pass through untouched.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
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

			userID, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints skip JWT auth. Internal endpoints are
// guarded by their own API-key middleware instead.
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	return path == "/login"
}
