package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"fbar-server/controllers"
)

// EnsureAuthMW ensures JWT tokens are valid before allowing the request to
// move forward. Routes behind it, like the admin console and /auth/logout,
// may assume the client is validated.
func EnsureAuthMW(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := controllers.TokenValid(r); err != nil {
				log.Info().Err(err).Str("path", r.URL.Path).Msg("token couldn't be validated")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
