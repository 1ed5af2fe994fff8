package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

// Client is the chat-completion surface the quiz generator depends on.
type Client interface {
	GenerateText(ctx context.Context, system, user string, temperature float64) (string, error)
	Model() string
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds the underlying HTTP client; callers still pass their own deadline.
	Timeout time.Duration
}

type client struct {
	log   *logger.Logger
	llm   llms.Model
	model string
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing LLM api key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
		),
	}

	m, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}
	return &client{
		log:   log.With("client", "LLMClient", "model", model),
		llm:   m,
		model: model,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) GenerateText(ctx context.Context, system, user string, temperature float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("llm request timed out: %w", context.DeadlineExceeded)
		}
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", fmt.Errorf("llm returned no choices")
	}
	c.log.Debug("llm completion", "duration_ms", time.Since(start).Milliseconds(), "chars", len(resp.Choices[0].Content))
	return resp.Choices[0].Content, nil
}
