package vecsim

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "vecsim"
	subsystem        = "engine"
)

var (
	gatesAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "gates_applied_total",
			Help:      "Total number of gate applications",
		},
		[]string{"gate"},
	)

	gateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "gate_duration_seconds",
			Help:      "Time taken to apply one gate to a register",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12), // 1µs to ~4s
		},
	)

	spansDispatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "spans_dispatched_total",
			Help:      "Total number of spans handed to pool workers",
		},
	)

	measurementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "measurements_total",
			Help:      "Total number of single-qubit measurement samples",
		},
		[]string{"outcome"}, // outcome: "0", "1"
	)
)

// Metrics keeps in-process counters for one engine.
type Metrics struct {
	mu sync.RWMutex

	GateCount         int64
	SpanCount         int64
	ParallelGateCount int64
	MeasurementCount  int64
	OutcomeCounts     [2]int64
	TotalGateTime     time.Duration

	AverageGateLatency time.Duration
	P95GateLatency     time.Duration
	P99GateLatency     time.Duration

	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindow: make([]time.Duration, 0, 1000), // Store last 1000 measurements
		windowSize:    1000,
	}
}

func (m *Metrics) recordGate(name string, startTime time.Time, spans int, parallel bool) {
	duration := time.Since(startTime)

	gatesAppliedTotal.WithLabelValues(name).Inc()
	gateDuration.Observe(duration.Seconds())
	if parallel {
		spansDispatchedTotal.Add(float64(spans))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.GateCount++
	m.SpanCount += int64(spans)
	if parallel {
		m.ParallelGateCount++
	}
	m.TotalGateTime += duration
	m.recordLatency(duration)
}

func (m *Metrics) recordMeasurements(outcomes []int) {
	var ones int64
	for _, o := range outcomes {
		ones += int64(o)
	}
	zeros := int64(len(outcomes)) - ones

	measurementsTotal.WithLabelValues("0").Add(float64(zeros))
	measurementsTotal.WithLabelValues("1").Add(float64(ones))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.MeasurementCount += int64(len(outcomes))
	m.OutcomeCounts[0] += zeros
	m.OutcomeCounts[1] += ones
}

// recordLatency is called with mu held.
func (m *Metrics) recordLatency(duration time.Duration) {
	m.AverageGateLatency = (m.AverageGateLatency*time.Duration(m.GateCount-1) + duration) / time.Duration(m.GateCount)

	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}
}

// updateLatencyPercentiles is called with mu held. Sorting the window is
// deferred to export time so gate calls stay cheap.
func (m *Metrics) updateLatencyPercentiles() {
	sorted := make([]time.Duration, len(m.latencyWindow))
	copy(sorted, m.latencyWindow)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted) > 0 {
		p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
		p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

		m.P95GateLatency = sorted[p95Index]
		m.P99GateLatency = sorted[p99Index]
	}
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateLatencyPercentiles()

	return map[string]interface{}{
		"gate_count":          m.GateCount,
		"parallel_gate_count": m.ParallelGateCount,
		"span_count":          m.SpanCount,
		"measurement_count":   m.MeasurementCount,
		"outcome_zero_count":  m.OutcomeCounts[0],
		"outcome_one_count":   m.OutcomeCounts[1],
		"avg_latency":         m.AverageGateLatency.Microseconds(),
		"p95_latency":         m.P95GateLatency.Microseconds(),
		"p99_latency":         m.P99GateLatency.Microseconds(),
	}
}
