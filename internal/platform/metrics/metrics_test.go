package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordFormLifecycle(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.FormCreated()
	m.FormCreated()
	m.FormDeleted()
	m.AddressAdded()
	m.EmailMessageUpdated()
	m.FormSaved(true, time.Now())
	m.FormSaved(false, time.Now())
	m.FormSaved(false, time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.FormsCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FormsActive), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AddressesAdded), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EmailMessageUpdates), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FormsSaved.WithLabelValues("true")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.FormsSaved.WithLabelValues("false")), 0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.FormCreated()
		m.FormDeleted()
		m.AddressAdded()
		m.EmailMessageUpdated()
		m.FormSaved(true, time.Now())
	})
}
