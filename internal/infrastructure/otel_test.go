package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"grantcli/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(nil, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	require.NotNil(t, providers.Tracer, "falls back to a no-op tracer")
	require.NotNil(t, providers.Meter, "falls back to a no-op meter")

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	RecordRunMetrics(context.Background(), metrics, 3, time.Second, nil)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		config     *OTelConfig
		wantTrace  bool
		wantMetric bool
		wantErr    bool
	}{
		{
			name:       "both exporters",
			config:     &OTelConfig{ServiceName: "test", ServiceVersion: "v1", TraceExporter: "stdout", MetricExporter: "prometheus", SampleRatio: 1},
			wantTrace:  true,
			wantMetric: true,
		},
		{
			name:       "metrics only",
			config:     &OTelConfig{ServiceName: "test", ServiceVersion: "v1", TraceExporter: "none", MetricExporter: "prometheus"},
			wantMetric: true,
		},
		{
			name:      "tracing only",
			config:    &OTelConfig{ServiceName: "test", ServiceVersion: "v1", TraceExporter: "stdout", MetricExporter: "none", SampleRatio: 1},
			wantTrace: true,
		},
		{
			name:    "unknown trace exporter",
			config:  &OTelConfig{ServiceName: "test", TraceExporter: "jaeger"},
			wantErr: true,
		},
		{
			name:    "unknown metric exporter",
			config:  &OTelConfig{ServiceName: "test", MetricExporter: "statsd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, err := InitializeOTel(tt.config, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantTrace, providers.TracerProvider != nil)
			assert.Equal(t, tt.wantMetric, providers.MeterProvider != nil)
			assert.Equal(t, tt.wantMetric, providers.PrometheusHTTP != nil)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, providers.Shutdown(ctx))
		})
	}
}

func TestNewOTelConfig(t *testing.T) {
	cfg := NewOTelConfig(config.Default().Telemetry)
	assert.Equal(t, config.AppName, cfg.ServiceName)
	assert.Equal(t, "none", cfg.TraceExporter)
	assert.Equal(t, "prometheus", cfg.MetricExporter)
	assert.Equal(t, config.AppVersion, cfg.ServiceVersion)
}

func TestPrometheusEndpoint_ExposesBusinessMetrics(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "test",
		ServiceVersion: "v1",
		TraceExporter:  "none",
		MetricExporter: "prometheus",
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordRunMetrics(ctx, metrics, 12, 250*time.Millisecond, nil)
	RecordNACounts(ctx, metrics, map[string]int{"gender": 4, "race": 0})
	RecordStepMetrics(ctx, metrics, "gender", time.Millisecond, true)
	RecordValidationFailure(ctx, metrics, "race")

	server := httptest.NewServer(providers.PrometheusHTTP)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "grantcli_rows_cleaned_total")
	assert.Contains(t, text, "grantcli_na_substitutions_total")
	assert.Contains(t, text, `column="gender"`)
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRunMetrics(ctx, nil, 1, time.Second, errors.New("boom"))
		RecordStepMetrics(ctx, nil, "x", time.Second, false)
		RecordNACounts(ctx, nil, map[string]int{"a": 1})
		RecordValidationFailure(ctx, nil, "a")
	})
}

func TestTraceCorrelation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "clean")
	traceID := TraceIDFromContext(ctx)
	require.NotEmpty(t, traceID)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
	assert.Equal(t, traceID, GetTraceID(ctx), "logger falls back to the span's trace ID")

	RecordError(ctx, assert.AnError)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)

	assert.Empty(t, TraceIDFromContext(context.Background()))
}
