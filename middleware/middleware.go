package middleware

import (
	"net/http"
	"strings"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/utils"
)

// JWTAuthMiddleware guards the admin routes: the token must be valid AND
// carry the admin role. Handlers that stamp an acting principal still
// extract the admin's name themselves.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if claims.Role != "admin" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_FORBIDDEN_ROLE, Description: Role %q refused for admin route %s %s", claims.Role, r.Method, r.URL.Path)
			http.Error(w, "Access forbidden: admin role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
