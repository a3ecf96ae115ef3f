package customer

import (
	"context"
	"sync"
)

// RecordingSink keeps saved results in memory for tests.
type RecordingSink struct {
	mu      sync.Mutex
	results []SaveResult
	Err     error
}

func (r *RecordingSink) Save(_ context.Context, _ string, result SaveResult) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

// Results returns a copy of everything saved so far.
func (r *RecordingSink) Results() []SaveResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SaveResult(nil), r.results...)
}

// Compile-time interface check
var _ Sink = (*RecordingSink)(nil)
