package walker_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/5l1v3r1/fuddly/walker"
)

func TestMetrics_CountsEmissionsAndResets(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := walker.NewMetrics(registry)

	root := smallTree()
	w, err := walker.New(root, walker.NewBasicVisitor(),
		walker.WithDeterminism(walker.Deterministic),
		walker.WithMetrics(metrics),
		walker.WithRunID("test-run"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	emissions := 0
	for range w.Walk() {
		emissions++
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Walk ended with error: %v", err)
	}
	if emissions == 0 {
		t.Fatal("expected at least one emission")
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	counts := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counts[mf.GetName()] += c.GetValue()
			}
		}
	}

	if got := counts["fuddly_walker_emissions_total"]; got != float64(emissions) {
		t.Errorf("emissions_total = %v, want %d", got, emissions)
	}
	if counts["fuddly_walker_resets_total"] == 0 {
		t.Error("expected at least one reset while walking both shapes")
	}
}

func TestMetrics_NilReceiverIsANoOp(t *testing.T) {
	root := smallTree()
	// No WithMetrics: the walker's *Metrics stays nil and every record
	// call must be a silent no-op.
	w, err := walker.New(root, walker.NewBasicVisitor(), walker.WithDeterminism(walker.Deterministic))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for range w.Walk() {
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Walk ended with error: %v", err)
	}
}
