package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "halyard",
			Subsystem: "lifecycle",
			Name:      "mutations_total",
			Help:      "Number of lifecycle mutations by operation and outcome.",
		}, []string{"operation", "outcome"},
	)
	violations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "halyard",
			Subsystem: "policy",
			Name:      "violations_total",
			Help:      "Number of validation violations by policy name.",
		}, []string{"policy"},
	)
	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "halyard",
			Subsystem: "notify",
			Name:      "events_total",
			Help:      "Number of convergence notifications by kind.",
		}, []string{"kind"},
	)
	versionBumps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "halyard",
			Subsystem: "lifecycle",
			Name:      "version_bumps_total",
			Help:      "Number of version token regenerations.",
		},
	)
)

// Register registers all collectors with the given registerer. Safe to call
// once; subsequent calls are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	for _, c := range []prometheus.Collector{mutations, violations, notifications, versionBumps} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}

func CountMutation(operation, outcome string) {
	mutations.WithLabelValues(operation, outcome).Inc()
}

func CountViolation(policy string) {
	violations.WithLabelValues(policy).Inc()
}

func CountNotification(kind string) {
	notifications.WithLabelValues(kind).Inc()
}

func CountVersionBump() {
	versionBumps.Inc()
}
