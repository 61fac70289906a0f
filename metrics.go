package authz

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	decisions *prometheus.CounterVec
	menuSize  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authz",
			Name:      "decisions_total",
			Help:      "Policy decisions by action and outcome.",
		}, []string{"action", "allowed"}),
		menuSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "authz",
			Name:      "menu_items",
			Help:      "Number of menu items projected per call.",
			Buckets:   prometheus.LinearBuckets(0, 2, 8),
		}),
	}
	reg.MustRegister(m.decisions, m.menuSize)
	return m
}

func (m *Metrics) observeDecision(action Action, allowed bool) {
	m.decisions.WithLabelValues(string(action), strconv.FormatBool(allowed)).Inc()
}

func (m *Metrics) observeMenu(size int) {
	m.menuSize.Observe(float64(size))
}
