package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a security-relevant action on a resource.
type AuditEvent struct {
	Action       string // create, save, delete, ...
	UserID       string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAudit writes e as a structured audit entry using the request-aware logger.
func LogAudit(ctx context.Context, e AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", e.Action),
		zap.String("audit.user_id", e.UserID),
		zap.String("audit.resource_type", e.ResourceType),
		zap.String("audit.resource_id", e.ResourceID),
		zap.String("audit.result", e.Result),
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", e.Details))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}
