package observability

import (
	"context"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	h := parseHeaders([]string{"x-api-key=abc", "bad", "=empty", "tenant = quiz", "k=v=w"})
	if len(h) != 3 || h["x-api-key"] != "abc" || h["tenant"] != "quiz" || h["k"] != "v=w" {
		t.Fatalf("parseHeaders: unexpected result %v", h)
	}
	if h := parseHeaders(nil); h != nil {
		t.Fatalf("parseHeaders: expected nil, got %v", h)
	}
}

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "1")
	t.Setenv("OTEL_SAMPLER_RATIO", "4")
	tc := TracingConfigFromEnv()
	if !tc.Enabled || tc.Endpoint != "collector:4318" || !tc.Insecure || tc.Headers["x-api-key"] != "abc" {
		t.Fatalf("unexpected tracing config: %+v", tc)
	}
	if tc.SampleRatio != 1 {
		t.Fatalf("sample ratio: got=%v want=1", tc.SampleRatio)
	}

	t.Setenv("OTEL_SAMPLER_RATIO", "-1")
	if got := TracingConfigFromEnv().SampleRatio; got != 0 {
		t.Fatalf("sample ratio: got=%v want=0", got)
	}
	t.Setenv("OTEL_SAMPLER_RATIO", "")
	if got := TracingConfigFromEnv().SampleRatio; got != 1 {
		t.Fatalf("default sample ratio: got=%v want=1", got)
	}
}

func TestInitOTelDisabledReturnsNil(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	if shutdown := InitOTel(context.Background(), nil, OtelConfig{}); shutdown != nil {
		t.Fatalf("InitOTel: expected nil shutdown when disabled")
	}
}
