package metrics

import "github.com/prometheus/client_golang/prometheus"

// SanitizerMetrics exposes counters/histograms for the PII sanitization path.
type SanitizerMetrics struct {
	detectionsTotal *prometheus.CounterVec
	sanitizeSeconds prometheus.Histogram
}

func NewSanitizerMetrics(reg prometheus.Registerer) *SanitizerMetrics {
	m := &SanitizerMetrics{
		detectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "sanitizer",
			Name:      "detections_total",
			Help:      "Total sensitive identifiers masked, by category and channel",
		}, []string{"category", "channel"}),
		sanitizeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assistant",
			Subsystem: "sanitizer",
			Name:      "sanitize_duration_seconds",
			Help:      "Latency of one sanitize call",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.detectionsTotal, m.sanitizeSeconds)
	return m
}

// ObserveDetection records one masked identifier of the given category found
// on the given channel (chat_input, knowledge_snippet).
func (m *SanitizerMetrics) ObserveDetection(category, channel string) {
	if m == nil {
		return
	}
	m.detectionsTotal.WithLabelValues(category, channel).Inc()
}

// ObserveSanitizeLatency records the duration of one sanitize call.
func (m *SanitizerMetrics) ObserveSanitizeLatency(seconds float64) {
	if m == nil {
		return
	}
	m.sanitizeSeconds.Observe(seconds)
}
