package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/arelgame/coinhouse/ledger/oteladapters"
)

func Test_MetricsCollector_RecordsWithoutError(t *testing.T) {
	// The noop meter verifies the instrument wiring does not panic and that
	// instruments are created lazily per metric name.
	collector := oteladapters.NewMetricsCollector(metricnoop.NewMeterProvider().Meter("test"))
	labels := map[string]string{"command_type": "DepositGold"}

	collector.RecordDuration("coinhouse_command_duration", 5*time.Millisecond, labels)
	collector.RecordDurationContext(context.Background(), "coinhouse_command_duration", time.Millisecond, labels)
	collector.IncrementCounter("coinhouse_command_retries", labels)
	collector.IncrementCounterContext(context.Background(), "coinhouse_command_retries", labels)
	collector.RecordValue("coinhouse_open_accounts", 42, nil)
	collector.RecordValueContext(context.Background(), "coinhouse_open_accounts", 43, nil)
}

func Test_TracingCollector_SpanLifecycle(t *testing.T) {
	// arrange
	collector := oteladapters.NewTracingCollector(tracenoop.NewTracerProvider().Tracer("test"))

	// act
	ctx, span := collector.StartSpan(context.Background(), "deposit", map[string]string{"coinhouse": "goldleaf"})

	// assert
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.AddAttribute("account", "abc")
	span.SetStatus("ok")
	collector.FinishSpan(span, "success", map[string]string{"outcome": "ok"})
}

func Test_TracingCollector_FinishSpanIgnoresForeignSpanContext(t *testing.T) {
	collector := oteladapters.NewTracingCollector(tracenoop.NewTracerProvider().Tracer("test"))

	assert.NotPanics(t, func() {
		collector.FinishSpan(nil, "ok", nil)
	})
}
