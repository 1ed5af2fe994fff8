package observability

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/yungbote/quizmind-backend/internal/platform/envutil"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

const defaultServiceName = "quizmind"

// OtelConfig names the traced service.
type OtelConfig struct {
	ServiceName string
	Environment string
	Version     string
}

// TracingConfig is the exporter side of tracing, read from OTEL_* variables.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Headers     map[string]string
	Insecure    bool
	SampleRatio float64
}

func TracingConfigFromEnv() TracingConfig {
	return TracingConfig{
		Enabled:     envutil.Bool("OTEL_ENABLED", false),
		Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", nil),
		Headers:     parseHeaders(envutil.List("OTEL_EXPORTER_OTLP_HEADERS", nil)),
		Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio: min(max(envutil.Float("OTEL_SAMPLER_RATIO", 1, nil), 0), 1),
	}
}

// parseHeaders turns "k=v" pairs into a header map, skipping malformed pairs.
func parseHeaders(pairs []string) map[string]string {
	headers := map[string]string{}
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" || val == "" {
			continue
		}
		headers[key] = val
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

var (
	otelOnce     sync.Once
	otelShutdown func(context.Context) error
)

// InitOTel installs the global tracer provider once. It returns nil when
// tracing is disabled; exporter failures are logged and tracing continues
// without export.
func InitOTel(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	otelOnce.Do(func() {
		tc := TracingConfigFromEnv()
		if !tc.Enabled {
			return
		}
		serviceName := strings.TrimSpace(cfg.ServiceName)
		if serviceName == "" {
			serviceName = defaultServiceName
		}
		tp := newTracerProvider(ctx, log, serviceName, cfg, tc)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		otelShutdown = tp.Shutdown
		if log != nil {
			log.Info("otel tracing initialized", "service", serviceName, "endpoint", tc.Endpoint, "sample_ratio", tc.SampleRatio)
		}
	})
	return otelShutdown
}

func newTracerProvider(ctx context.Context, log *logger.Logger, serviceName string, cfg OtelConfig, tc TracingConfig) *sdktrace.TracerProvider {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tc.SampleRatio))),
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.Version)),
		attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
	))
	if err != nil {
		warn(log, "otel resource init failed (continuing)", err)
	}
	if res != nil {
		opts = append(opts, sdktrace.WithResource(res))
	}

	exporter, err := newExporter(ctx, log, tc)
	if err != nil {
		warn(log, "otel exporter init failed (continuing)", err)
	} else {
		opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// newExporter ships spans over OTLP/HTTP when an endpoint is set, else to stdout.
func newExporter(ctx context.Context, log *logger.Logger, tc TracingConfig) (sdktrace.SpanExporter, error) {
	if tc.Endpoint == "" {
		if log != nil {
			log.Warn("otel using stdout exporter, no OTLP endpoint configured")
		}
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(tc.Endpoint)}
	if tc.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if tc.Headers != nil {
		opts = append(opts, otlptracehttp.WithHeaders(tc.Headers))
	}
	return otlptracehttp.New(ctx, opts...)
}

func warn(log *logger.Logger, msg string, err error) {
	if log != nil {
		log.Warn(msg, "error", err)
	}
}
