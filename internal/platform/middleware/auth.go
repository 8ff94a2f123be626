package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"turnero/internal/platform/token"
	usermodels "turnero/internal/user/models"
	id "turnero/pkg/domain"
	"turnero/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the caller's claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims carries the authenticated caller's identity and role.
type Claims = token.Claims

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access: missing token",
					"request_id", requestcontext.RequestID(ctx))
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access: invalid token",
					"error", err, "request_id", requestcontext.RequestID(ctx))
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			callerID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access: bad subject",
					"error", err, "request_id", requestcontext.RequestID(ctx))
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithCaller(ctx, callerID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScheduleManager gates schedule-mutating routes to trainers and
// admins. Must run after RequireAuth.
func RequireScheduleManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := usermodels.Role(requestcontext.CallerRole(r.Context()))
		if !role.CanManageSchedule() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Requires a trainer or admin role"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
