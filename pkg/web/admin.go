package web

import (
	"log/slog"
	"net/http"
)

// AdminKeyHeader is the request header carrying the pre-shared admin secret.
const AdminKeyHeader = "X-Admin-Key"

// adminDeniedMessage matches the body returned for every rejected admin call.
const adminDeniedMessage = "Access Denied: Admin privileges required. Invalid Admin Key."

// AdminOnly gates a route group behind an exact match of the AdminKeyHeader
// value against the configured secret. A mismatch or missing header yields
// 403 before the handler runs, so gated operations never mutate state.
func AdminOnly(key string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(AdminKeyHeader) != key {
				logger.Warn("Admin key rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				RespondError(w, logger, http.StatusForbidden, adminDeniedMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
