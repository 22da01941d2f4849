package walker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus-compatible counters, gauges, and a
// histogram describing a ModelWalker's negotiation with its Consumer.
//
// Metrics exposed (namespaced "fuddly_walker_"):
//
//  1. emissions_total (counter): nodes yielded to the caller. Labels: run_id.
//  2. resets_total (counter): times a node was reset and re-walked.
//     Labels: run_id, node_name.
//  3. exhaustions_total (counter): times StillInterestedBy/ConsumeNode
//     reported a node exhausted. Labels: run_id, node_name.
//  4. ignored_total (counter): times the consumer declined a node outright.
//     Labels: run_id.
//  5. consumed_set_size (gauge): size of the per-ancestor consumed-node
//     set, sampled after each negotiation. Labels: run_id.
//  6. wait_for_exhaustion_budget (histogram): the remaining-runs budget
//     WaitForExhaustion reports for a node, sampled once per consumed
//     node when its negotiation starts.
//
// A nil *Metrics is valid and every method becomes a no-op; ModelWalker
// uses this to make metrics collection optional without branching at
// every call site.
type Metrics struct {
	emissions   *prometheus.CounterVec
	resets      *prometheus.CounterVec
	exhaustions *prometheus.CounterVec
	ignored     *prometheus.CounterVec
	consumedSet *prometheus.GaugeVec
	waitBudget  prometheus.Histogram
}

// NewMetrics registers and returns a Metrics collector on registry. A
// nil registry uses prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		emissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuddly_walker",
			Name:      "emissions_total",
			Help:      "Nodes yielded to the caller by a walk",
		}, []string{"run_id"}),
		resets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuddly_walker",
			Name:      "resets_total",
			Help:      "Times a node was reset and its subtree re-walked",
		}, []string{"run_id", "node_name"}),
		exhaustions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuddly_walker",
			Name:      "exhaustions_total",
			Help:      "Times a node was reported exhausted by the consumer",
		}, []string{"run_id", "node_name"}),
		ignored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuddly_walker",
			Name:      "ignored_total",
			Help:      "Times the consumer declined to consume a node outright",
		}, []string{"run_id"}),
		consumedSet: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fuddly_walker",
			Name:      "consumed_set_size",
			Help:      "Size of the per-ancestor consumed-node set after negotiation",
		}, []string{"run_id"}),
		waitBudget: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fuddly_walker",
			Name:      "wait_for_exhaustion_budget",
			Help:      "Remaining-runs budget reported by WaitForExhaustion when a node's negotiation starts",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		}),
	}
}

func (m *Metrics) recordEmission(runID string) {
	if m == nil {
		return
	}
	m.emissions.WithLabelValues(runID).Inc()
}

func (m *Metrics) recordReset(runID, nodeName string) {
	if m == nil {
		return
	}
	m.resets.WithLabelValues(runID, nodeName).Inc()
}

func (m *Metrics) recordExhaustion(runID, nodeName string) {
	if m == nil {
		return
	}
	m.exhaustions.WithLabelValues(runID, nodeName).Inc()
}

func (m *Metrics) recordIgnored(runID string) {
	if m == nil {
		return
	}
	m.ignored.WithLabelValues(runID).Inc()
}

func (m *Metrics) setConsumedSetSize(runID string, size int) {
	if m == nil {
		return
	}
	m.consumedSet.WithLabelValues(runID).Set(float64(size))
}

func (m *Metrics) observeWaitBudget(budget int) {
	if m == nil {
		return
	}
	m.waitBudget.Observe(float64(budget))
}
