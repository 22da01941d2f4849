package emit

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func attributeMap(attrs []attribute.KeyValue) map[attribute.Key]any {
	m := make(map[attribute.Key]any, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value.AsInterface()
	}
	return m
}

func TestOTelEmitter_Emit(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	e := NewOTelEmitter(otel.Tracer("test"))
	e.Emit(Event{
		RunID:    "run-001",
		Step:     4,
		NodeName: "node-a",
		Msg:      "emission",
		Meta:     map[string]any{"kind": "terminal"},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "emission" {
		t.Errorf("span name = %q, want %q", span.Name, "emission")
	}

	attrs := attributeMap(span.Attributes)
	if got := attrs[attribute.Key("fuddly.run_id")]; got != "run-001" {
		t.Errorf("run_id = %v, want run-001", got)
	}
	if got := attrs[attribute.Key("fuddly.step")]; got != int64(4) {
		t.Errorf("step = %v, want 4", got)
	}
	if got := attrs[attribute.Key("fuddly.node_name")]; got != "node-a" {
		t.Errorf("node_name = %v, want node-a", got)
	}
	if got := attrs[attribute.Key("fuddly.meta.kind")]; got != "terminal" {
		t.Errorf("meta.kind = %v, want terminal", got)
	}
	if !span.EndTime.After(span.StartTime) {
		t.Error("span was not ended")
	}
}

func TestOTelEmitter_EmitWithError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	e := NewOTelEmitter(otel.Tracer("test"))
	e.Emit(Event{RunID: "run-001", Msg: "exhausted", Meta: map[string]any{"error": "node already exhausted"}})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Description != "node already exhausted" {
		t.Errorf("status description = %q, want error message", spans[0].Status.Description)
	}
}
