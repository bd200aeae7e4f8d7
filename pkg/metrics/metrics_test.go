package metrics_test

import (
	"context"
	"testing"
	"time"

	"domainshop/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOutbound_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewOutbound(reg, "registrar")

	m.Observe("lookup", "available", 20*time.Millisecond)
	m.Observe("lookup", "available", 30*time.Millisecond)
	m.Observe("register", "failed", time.Second)

	require.InDelta(t, 2, testutil.ToFloat64(m.Calls.WithLabelValues("lookup", "available")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues("register", "failed")), 0)
	require.Equal(t, 2, testutil.CollectAndCount(m.Latency))
}

func TestOutbound_NilIsNoop(t *testing.T) {
	var m *metrics.Outbound
	require.NotPanics(t, func() { m.Observe("lookup", "ok", time.Millisecond) })
}

func TestNewMeterProvider(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	counter, err := mp.Meter("test").Int64Counter("purchase.outcomes")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "purchase_outcomes_total")
}

func TestNewTracerProvider_LogsFinishedSpans(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tp := metrics.NewTracerProvider(zap.New(core))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "purchase.Purchase")
	require.True(t, span.SpanContext().IsSampled())
	span.End()

	entries := logs.FilterMessage("span finished").All()
	require.Len(t, entries, 1)
	require.Equal(t, "purchase.Purchase", entries[0].ContextMap()["span"])
	require.Equal(t, span.SpanContext().TraceID().String(), entries[0].ContextMap()["traceID"])
}

func TestNewTracerProvider_QuietAboveDebug(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tp := metrics.NewTracerProvider(zap.New(core))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "purchase.CheckDomain")
	span.End()

	require.Zero(t, logs.Len())
}
