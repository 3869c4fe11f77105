package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TrialStatusOK and TrialStatusInvalidSeed label trial outcomes.
const (
	TrialStatusOK          = "ok"
	TrialStatusInvalidSeed = "invalid_seed"
)

// Registry holds all metrics for the benchmark
type Registry struct {
	registry *prometheus.Registry

	// Graph metrics
	GraphNodesTotal prometheus.Gauge
	GraphEdgesTotal prometheus.Gauge

	// Trial metrics
	TrialsTotal       *prometheus.CounterVec
	ExpansionDuration prometheus.Histogram
	ExpansionCycles   prometheus.Histogram
	CommunitySize     prometheus.Histogram
	CommunityF1       prometheus.Histogram

	// Evaluation metrics
	EvaluationsTotal   prometheus.Counter
	EvaluationDuration prometheus.Histogram
}

// NewRegistry creates a Registry with all metrics registered on a private
// prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communitybench_graph_nodes_total",
			Help: "Number of nodes in the loaded graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "communitybench_graph_edges_total",
			Help: "Number of undirected edges in the loaded graph",
		},
	)

	r.TrialsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communitybench_trials_total",
			Help: "Total number of seed trials executed",
		},
		[]string{"strategy", "status"},
	)

	r.ExpansionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "communitybench_expansion_duration_seconds",
			Help:    "Local expansion duration per seed in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.ExpansionCycles = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "communitybench_expansion_cycles",
			Help:    "Grow+prune cycles until convergence",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	r.CommunitySize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "communitybench_community_size",
			Help:    "Size of detected communities",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 10000},
		},
	)

	r.CommunityF1 = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "communitybench_community_f1",
			Help:    "F1 score of detected communities against ground truth",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 1.0},
		},
	)

	r.EvaluationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "communitybench_evaluations_total",
			Help: "Total number of evaluation runs",
		},
	)

	r.EvaluationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "communitybench_evaluation_duration_seconds",
			Help:    "Whole-run evaluation duration in seconds",
			Buckets: []float64{0.01, 0.1, 1.0, 10.0, 60.0, 300.0},
		},
	)

	return r
}

// SetGraphSize records the size of the graph under evaluation.
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordTrial records one seed trial outcome.
func (r *Registry) RecordTrial(strategy, status string, duration time.Duration, cycles, size int) {
	r.TrialsTotal.WithLabelValues(strategy, status).Inc()
	if status != TrialStatusOK {
		return
	}
	r.ExpansionDuration.Observe(duration.Seconds())
	r.ExpansionCycles.Observe(float64(cycles))
	r.CommunitySize.Observe(float64(size))
}

// RecordScore records the match quality of one scored trial.
func (r *Registry) RecordScore(f1 float64) {
	r.CommunityF1.Observe(f1)
}

// RecordEvaluation records a completed evaluation run.
func (r *Registry) RecordEvaluation(duration time.Duration) {
	r.EvaluationsTotal.Inc()
	r.EvaluationDuration.Observe(duration.Seconds())
}

// Handler exposes the registry over HTTP in the prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying prometheus gatherer (used in tests).
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
