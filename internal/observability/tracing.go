package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "reactive-core"

var tracer = otel.Tracer(tracerName)

// StartSpan starts a span named name: resolve a tracer off the global
// provider (a no-op provider until the host app installs a real one via
// otel.SetTracerProvider) and hand back an End func the caller defers,
// which records err (if any) and closes the span.
func StartSpan(ctx context.Context, name string) (context.Context, func(err error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	spanCtx, span := tracer.Start(ctx, name, trace.WithTimestamp(time.Now()))
	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
