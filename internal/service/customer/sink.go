package customer

import (
	"context"

	"go.uber.org/zap"

	applog "github.com/janisto/customer-form/internal/platform/logging"
)

// LogSink writes saved snapshots to the request logger.
type LogSink struct{}

// Save logs the snapshot and an audit event.
func (LogSink) Save(ctx context.Context, owner string, result SaveResult) error {
	applog.LogInfo(ctx, "customer form saved",
		zap.String("formId", result.FormID),
		zap.Bool("valid", result.Valid),
		zap.Int("addresses", len(result.Customer.Addresses)),
		zap.Any("customer", result.Customer),
	)
	applog.LogAudit(ctx, applog.AuditEvent{
		Action:       "save",
		UserID:       owner,
		ResourceType: "customer_form",
		ResourceID:   result.FormID,
		Result:       applog.AuditSuccess,
		Details:      map[string]any{"valid": result.Valid},
	})
	return nil
}

var _ Sink = LogSink{}
