package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for Reduce invocations, exposed at GET
// /metrics by the route internal/app registers. This is separate from
// qc/simulator's atomic-counter ExecutionMetrics, which tracks runner
// capability rather than planner behavior.
var (
	shotsRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qreduce",
		Subsystem: "planner",
		Name:      "shots_run_total",
		Help:      "Number of planner trial shots executed, by method.",
	}, []string{"method"})

	resultingWidth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "qreduce",
		Subsystem: "planner",
		Name:      "resulting_width",
		Help:      "Compiled circuit width chosen by a Reduce invocation, by method.",
		Buckets:   prometheus.LinearBuckets(1, 2, 16),
	}, []string{"method"})
)

func observeReduce(method string, shots int, plan Plan) {
	shotsRun.WithLabelValues(method).Add(float64(shots))
	resultingWidth.WithLabelValues(method).Observe(float64(plan.Width))
}
