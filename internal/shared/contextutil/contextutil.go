package contextutil

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// contextKey keeps our values apart from other packages' keys.
type contextKey string

const (
	principalKey contextKey = "principal"
	loggerKey    contextKey = "logger"
)

const RoleAdmin = "Admin"

// Principal is the authenticated session carried explicitly on the request context.
type Principal struct {
	UserID     string
	Username   string
	Role       string
	EmployeeID string
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), RoleAdmin)
}

// --- Principal Helpers ---

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the session principal and whether one is present.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// GetUserID returns the principal's user id, or "" for anonymous requests.
func GetUserID(ctx context.Context) string {
	if p, ok := GetPrincipal(ctx); ok {
		return p.UserID
	}
	return ""
}

// --- Logger Helpers ---

// WithLogger stores a request-scoped logger on ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, falling back to defaultLogger and
// finally to a no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// Metadata is the tracing info attached to manual log lines.
type Metadata struct {
	RequestID string
	UserID    string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    GetUserID(ctx),
	}
}
