// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them without importing
// net/http. Tests inject them directly:
//
//	ctx = requestcontext.WithCaller(ctx, userID, models.RoleMember)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "turnero/pkg/domain"
)

type (
	callerIDKey    struct{}
	callerRoleKey  struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyCallerID    = callerIDKey{}
	ContextKeyCallerRole  = callerRoleKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// WithCaller injects the authenticated caller's identity and role.
func WithCaller(ctx context.Context, userID id.UserID, role string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyCallerID, userID)
	return context.WithValue(ctx, ContextKeyCallerRole, role)
}

// CallerID retrieves the authenticated caller's user ID, or the nil ID when
// the request is unauthenticated.
func CallerID(ctx context.Context) id.UserID {
	if v, ok := ctx.Value(ContextKeyCallerID).(id.UserID); ok {
		return v
	}
	return id.UserID{}
}

// CallerRole retrieves the caller's role string, or "" when unset.
func CallerRole(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyCallerRole).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestID retrieves the correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// Now retrieves the request-scoped time from context. Falls back to
// time.Now() for non-HTTP contexts like workers and tests that don't care.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time. Used by service tests and by the
// reminder scheduler to keep one consistent "now" per sweep.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
