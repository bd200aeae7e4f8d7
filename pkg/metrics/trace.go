package metrics

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// NewTracerProvider returns a tracer provider that records every span and
// writes finished ones to log at debug level.
func NewTracerProvider(log *zap.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(&spanLogger{log: log}),
	)
}

type spanLogger struct {
	log *zap.Logger
}

func (l *spanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (l *spanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if ce := l.log.Check(zap.DebugLevel, "span finished"); ce != nil {
		ce.Write(
			zap.String("span", s.Name()),
			zap.String("traceID", s.SpanContext().TraceID().String()),
			zap.String("spanID", s.SpanContext().SpanID().String()),
			zap.Duration("duration", s.EndTime().Sub(s.StartTime())),
			zap.String("status", s.Status().Code.String()),
		)
	}
}

func (l *spanLogger) Shutdown(context.Context) error { return nil }

func (l *spanLogger) ForceFlush(context.Context) error { return nil }
