package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectMu sync.RWMutex
	projectID string
	projectOK bool
)

// SetProjectID fixes the Google Cloud project used for trace correlation.
// Without it the project is looked up once from the environment.
func SetProjectID(id string) {
	projectMu.Lock()
	defer projectMu.Unlock()
	projectID = id
	projectOK = true
}

func resolveProjectID() string {
	projectMu.RLock()
	if projectOK {
		defer projectMu.RUnlock()
		return projectID
	}
	projectMu.RUnlock()

	projectMu.Lock()
	defer projectMu.Unlock()
	if !projectOK {
		projectID = firstNonEmpty(
			os.Getenv("FIREBASE_PROJECT_ID"),
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
		projectOK = true
	}
	return projectID
}

func loggerWithTrace(base *zap.Logger, header, project, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, project)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func parseTraceparent(header string) (traceID, spanID string, sampled, ok bool) {
	m := traceHeaderRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return "", "", false, false
	}
	return m[2], m[3], m[4] == "01", true
}

func traceFields(header, project string) []zap.Field {
	if project == "" {
		return nil
	}
	traceID, spanID, sampled, ok := parseTraceparent(header)
	if !ok {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", fmt.Sprintf("projects/%s/traces/%s", project, traceID)),
		zap.String("logging.googleapis.com/spanId", spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", sampled),
	}
}

func traceResource(header, project string) string {
	if project == "" {
		return ""
	}
	traceID, _, _, ok := parseTraceparent(header)
	if !ok {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", project, traceID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
