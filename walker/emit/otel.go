package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter implements Emitter by recording each Event as an
// immediately-ended OpenTelemetry span. Spans represent points in time
// (an emission, a reset, an exhaustion) rather than durations, so they
// are started and ended within Emit.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter returns an OTelEmitter that records spans on tracer.
//
//	tracer := otel.Tracer("fuddly/walker")
//	w, err := walker.New(root, consumer, walker.WithEmitter(emit.NewOTelEmitter(tracer)))
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit starts and immediately ends a span named after event.Msg, with
// event fields and metadata attached as attributes.
func (o *OTelEmitter) Emit(event Event) {
	_, span := o.tracer.Start(context.Background(), event.Msg)
	defer span.End()

	span.SetAttributes(
		attribute.String("fuddly.run_id", event.RunID),
		attribute.Int("fuddly.step", event.Step),
	)
	if event.NodeName != "" {
		span.SetAttributes(attribute.String("fuddly.node_name", event.NodeName))
	}

	for k, v := range event.Meta {
		span.SetAttributes(attribute.String("fuddly.meta."+k, fmt.Sprintf("%v", v)))
	}

	if errMsg, ok := event.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, errMsg)
		span.RecordError(fmt.Errorf("%s", errMsg))
	}
}
