package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLoggerUsesRequestLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	access := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/customer-forms", nil)
	req = req.WithContext(contextWithLogger(req.Context(), zap.New(core)))
	access.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "request completed" {
		t.Fatalf("unexpected log message: %s", entries[0].Message)
	}
	fields := fieldMap(entries[0])
	if f := fields["status"]; f.Integer != http.StatusCreated {
		t.Fatalf("expected status 201, got %+v", f)
	}
	if f := fields["method"]; f.String != http.MethodPost {
		t.Fatalf("expected method POST, got %+v", f)
	}
	if _, ok := fields["duration"]; !ok {
		t.Fatalf("expected duration field, got %+v", fields)
	}
}

func TestRequestLoggerFallsBackToRequestID(t *testing.T) {
	SetProjectID("")

	var traceID *string
	handler := RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if traceID == nil || *traceID != "req-42" {
		t.Fatalf("expected request ID as trace ID, got %v", traceID)
	}
}

func TestRequestLoggerUsesTraceparent(t *testing.T) {
	SetProjectID("demo-project")
	t.Cleanup(func() { SetProjectID("") })

	var traceID *string
	handler := RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	want := "projects/demo-project/traces/ab42124a3c573678d4d8b21ba52df3bf"
	if traceID == nil || *traceID != want {
		t.Fatalf("expected %s, got %v", want, traceID)
	}
}
