package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogAudit(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogAudit(ctx, AuditEvent{
		Action:       "save",
		UserID:       "user-1",
		ResourceType: "customer_form",
		ResourceID:   "form-1",
		Result:       AuditSuccess,
		Details:      map[string]any{"valid": false},
	})

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "Audit event" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	fields := fieldMap(entries[0])
	for key, want := range map[string]string{
		"audit.action":        "save",
		"audit.user_id":       "user-1",
		"audit.resource_type": "customer_form",
		"audit.resource_id":   "form-1",
		"audit.result":        "success",
	} {
		if got := fields[key].String; got != want {
			t.Fatalf("%s: expected %s, got %s", key, want, got)
		}
	}
	if _, ok := fields["audit.details"]; !ok {
		t.Fatal("expected details field")
	}
}

func TestLogAuditOmitsEmptyDetails(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogAudit(ctx, AuditEvent{Action: "delete", Result: AuditFailure})

	if _, ok := fieldMap(recorded.All()[0])["audit.details"]; ok {
		t.Fatal("did not expect details field")
	}
}
