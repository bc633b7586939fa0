package collaborator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName names the tracer used for every span this package opens.
const defaultTracerName = "reactorctl/collaborator"

// TracedFlush wraps fn — expected to call reactive.Flush — in a span
// recording the tick value that triggered it, mirroring how a production
// router middleware would wrap a request handler.
func TracedFlush(ctx context.Context, tick int, fn func()) {
	tracer := otel.Tracer(defaultTracerName)
	_, span := tracer.Start(ctx, "reactorctl.flush",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("reactorctl.tick", tick)),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			span.RecordError(panicError{r})
			span.SetStatus(codes.Error, "panic during flush")
			panic(r)
		}
	}()

	fn()
	span.SetStatus(codes.Ok, "")
}

// panicError adapts a recovered panic value to the error interface so it can
// be attached to a span via RecordError.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	if err, ok := p.value.(error); ok {
		return err.Error()
	}
	return "panic: " + toString(p.value)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if stringer, ok := v.(interface{ String() string }); ok {
		return stringer.String()
	}
	return "non-string panic value"
}
