package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks customer form activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FormsCreated        prometheus.Counter
	FormsActive         prometheus.Gauge
	FormsSaved          *prometheus.CounterVec
	AddressesAdded      prometheus.Counter
	EmailMessageUpdates prometheus.Counter
	SaveDuration        prometheus.Histogram
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FormsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "customer_forms_created_total",
			Help: "Total number of customer forms created",
		}),
		FormsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "customer_forms_active",
			Help: "Number of customer forms currently held in memory",
		}),
		FormsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "customer_forms_saved_total",
			Help: "Total number of customer form saves, by form validity at save time",
		}, []string{"valid"}),
		AddressesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "customer_form_addresses_added_total",
			Help: "Total number of address entries appended to customer forms",
		}),
		EmailMessageUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "customer_form_email_message_updates_total",
			Help: "Total number of debounced email message recomputations",
		}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "customer_form_save_duration_seconds",
			Help:    "Duration of save operations including the sink",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// FormCreated records a new form.
func (m *Metrics) FormCreated() {
	if m == nil {
		return
	}
	m.FormsCreated.Inc()
	m.FormsActive.Inc()
}

// FormDeleted records a discarded form.
func (m *Metrics) FormDeleted() {
	if m == nil {
		return
	}
	m.FormsActive.Dec()
}

// FormSaved records a save. Call with time.Now() captured at the start.
func (m *Metrics) FormSaved(valid bool, start time.Time) {
	if m == nil {
		return
	}
	label := "false"
	if valid {
		label = "true"
	}
	m.FormsSaved.WithLabelValues(label).Inc()
	m.SaveDuration.Observe(time.Since(start).Seconds())
}

// AddressAdded records an appended address entry.
func (m *Metrics) AddressAdded() {
	if m == nil {
		return
	}
	m.AddressesAdded.Inc()
}

// EmailMessageUpdated records a debounced email message recomputation.
func (m *Metrics) EmailMessageUpdated() {
	if m == nil {
		return
	}
	m.EmailMessageUpdates.Inc()
}
