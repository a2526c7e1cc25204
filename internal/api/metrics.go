package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes used as the "outcome" label.
const (
	outcomeDAG       = "dag"
	outcomeCyclic    = "cyclic"
	outcomeInvalid   = "invalid"
	outcomeMalformed = "malformed"
	outcomeTooLarge  = "too_large"
	outcomeError     = "error"
)

// Metrics holds the collectors for pipeline submissions.
type Metrics struct {
	// submissions counts parse requests.
	// Labels: outcome (dag, cyclic, invalid, malformed, too_large, error)
	submissions *prometheus.CounterVec

	// graphNodes and graphEdges record the size of accepted graphs.
	graphNodes prometheus.Histogram
	graphEdges prometheus.Histogram

	// validationDuration measures decode-to-verdict time.
	validationDuration prometheus.Histogram
}

// NewMetrics registers the submission collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	sizeBuckets := prometheus.ExponentialBuckets(1, 4, 8)

	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leapflow",
			Subsystem: "pipelines",
			Name:      "submissions_total",
			Help:      "Total pipeline submissions by outcome",
		}, []string{"outcome"}),
		graphNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leapflow",
			Subsystem: "pipelines",
			Name:      "graph_nodes",
			Help:      "Number of nodes in accepted submissions",
			Buckets:   sizeBuckets,
		}),
		graphEdges: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leapflow",
			Subsystem: "pipelines",
			Name:      "graph_edges",
			Help:      "Number of edges in accepted submissions",
			Buckets:   sizeBuckets,
		}),
		validationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leapflow",
			Subsystem: "pipelines",
			Name:      "validation_duration_seconds",
			Help:      "Time spent decoding and validating a submission",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

func (m *Metrics) observe(outcome string, numNodes, numEdges int, seconds float64) {
	m.submissions.WithLabelValues(outcome).Inc()
	m.validationDuration.Observe(seconds)
	if outcome == outcomeDAG || outcome == outcomeCyclic {
		m.graphNodes.Observe(float64(numNodes))
		m.graphEdges.Observe(float64(numEdges))
	}
}
