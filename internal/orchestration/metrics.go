package orchestration

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/secure-ssid/central-portal/internal/provisioning"
)

var (
	// Run metrics
	deploymentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "central",
			Subsystem: "deployment",
			Name:      "runs_total",
			Help:      "Total number of WLAN deployment runs by result",
		},
		[]string{"result"},
	)

	// Step metrics
	deploymentStepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "central",
			Subsystem: "deployment",
			Name:      "step_duration_seconds",
			Help:      "Duration of deployment steps in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"step", "status"},
	)

	// Compensation metrics
	compensationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "central",
			Subsystem: "deployment",
			Name:      "compensations_total",
			Help:      "Total number of compensating deletes by resource type and result",
		},
		[]string{"type", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		deploymentRunsTotal,
		deploymentStepDuration,
		compensationsTotal,
	)
}

// metricsObserver turns run events into deployment metrics.
type metricsObserver struct {
	mu       sync.Mutex
	started  map[provisioning.StepID]time.Time
	degraded bool
}

func newMetricsObserver() *metricsObserver {
	return &metricsObserver{started: make(map[provisioning.StepID]time.Time)}
}

// Event implements provisioning.Observer.
func (m *metricsObserver) Event(e provisioning.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e.Type {
	case provisioning.EventRunStarted:
		m.started = make(map[provisioning.StepID]time.Time)
		m.degraded = false
	case provisioning.EventStepStarted:
		m.started[e.Step] = e.Timestamp
	case provisioning.EventStepCompleted, provisioning.EventStepFailed:
		if start, ok := m.started[e.Step]; ok {
			recordStepMetric(e.Step, e.Status, e.Timestamp.Sub(start))
		}
		if e.Type == provisioning.EventStepFailed {
			m.degraded = true
		}
	case provisioning.EventResourceDeleted:
		recordCompensationMetric(e.Resource, "deleted")
	case provisioning.EventCompensationFailed:
		recordCompensationMetric(e.Resource, "failed")
	case provisioning.EventRunSucceeded:
		if m.degraded {
			deploymentRunsTotal.WithLabelValues("degraded").Inc()
		} else {
			deploymentRunsTotal.WithLabelValues("succeeded").Inc()
		}
	case provisioning.EventRunFailed:
		deploymentRunsTotal.WithLabelValues("failed").Inc()
	}
}

// recordStepMetric records the duration of a finished step.
func recordStepMetric(step provisioning.StepID, status provisioning.StepStatus, d time.Duration) {
	deploymentStepDuration.WithLabelValues(string(step), string(status)).Observe(d.Seconds())
}

// recordCompensationMetric records a compensating delete.
func recordCompensationMetric(r *provisioning.CreatedResource, result string) {
	typ := "unknown"
	if r != nil {
		typ = string(r.Type)
	}
	compensationsTotal.WithLabelValues(typ, result).Inc()
}
