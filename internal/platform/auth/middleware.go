package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/customer-form/internal/platform/logging"
)

type userContextKey struct{}

// NewAuthMiddleware authenticates operations that declare a Security
// requirement. Others pass through untouched.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		headerOK := err == nil
		if headerOK {
			var user *User
			user, err = verifier.Verify(ctx.Context(), token)
			if err == nil {
				next(huma.WithValue(ctx, userContextKey{}, user))
				return
			}
		}

		reason := failureReason(err, headerOK)
		applog.LogWarn(ctx.Context(), "authentication failed",
			zap.String("reason", reason),
			zap.String("operation", ctx.Operation().OperationID),
		)
		applog.LogAudit(ctx.Context(), applog.AuditEvent{
			Action:       "authenticate",
			ResourceType: "operation",
			ResourceID:   ctx.Operation().OperationID,
			Result:       applog.AuditFailure,
			Details:      map[string]any{"reason": reason},
		})

		if errors.Is(err, ErrCertificateFetch) {
			ctx.SetHeader("Retry-After", "30")
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "authentication service temporarily unavailable")
			return
		}
		ctx.SetHeader("WWW-Authenticate", "Bearer")
		if !headerOK {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
	}
}

// failureReason is a log-safe category; token contents are never logged.
func failureReason(err error, headerOK bool) string {
	switch {
	case errors.Is(err, ErrNoToken):
		return "no_token"
	case !headerOK:
		return "malformed_header"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	default:
		return "invalid_token"
	}
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}

// UIDFromContext returns the authenticated user's UID, or "".
func UIDFromContext(ctx context.Context) string {
	if u := UserFromContext(ctx); u != nil {
		return u.UID
	}
	return ""
}
