package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels completed analyses.
	OutcomeSuccess = "success"
	// OutcomeError labels analyses that returned an error.
	OutcomeError = "error"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gonodal",
			Name:      "analyses_total",
			Help:      "Total number of nodal analyses run, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gonodal",
			Name:      "analysis_seconds",
			Help:      "Nodal analysis latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	segmentSolvesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gonodal",
			Name:      "segment_solves_total",
			Help:      "Total number of segment pressure-drop solves.",
		},
	)

	solverIterationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gonodal",
			Name:      "solver_iterations_total",
			Help:      "Total fixed-point iterations spent in segment solves.",
		},
	)

	nonConvergedSolvesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gonodal",
			Name:      "non_converged_solves_total",
			Help:      "Segment solves that hit the iteration cap.",
		},
	)

	sweepValuesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gonodal",
			Name:      "sweep_values_total",
			Help:      "Sensitivity values evaluated, partitioned by parameter.",
		},
		[]string{"parameter"},
	)
)

// Register attaches gonodal collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysesTotal,
		analysisDurationSeconds,
		segmentSolvesTotal,
		solverIterationsTotal,
		nonConvergedSolvesTotal,
		sweepValuesTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records an analysis duration and outcome label.
func ObserveAnalysis(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	analysesTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// ObserveSolves records segment solver work.
func ObserveSolves(solves, iterations, nonConverged int) {
	segmentSolvesTotal.Add(float64(max(solves, 0)))
	solverIterationsTotal.Add(float64(max(iterations, 0)))
	nonConvergedSolvesTotal.Add(float64(max(nonConverged, 0)))
}

// ObserveSweepValue records one evaluated sensitivity value.
func ObserveSweepValue(parameter string) {
	sweepValuesTotal.WithLabelValues(parameter).Inc()
}

// WriteTextfile gathers reg and writes it in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(reg prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
