package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/quizmind-backend/internal/platform/llm"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

// QuizGenerator produces exactly count validated drafts or a *GenerationError.
type QuizGenerator interface {
	Generate(ctx context.Context, topic string, count int, difficulty string) ([]QuestionDraft, error)
	Model() string
	Temperature() float64
}

type GeneratorConfig struct {
	// Temperature overrides the default sampling temperature when set; zero is honored.
	Temperature *float64
	Timeout     time.Duration
}

type quizGenerator struct {
	log         *logger.Logger
	client      llm.Client
	tracer      trace.Tracer
	temperature float64
	timeout     time.Duration
	variation   func() int
}

func NewQuizGenerator(log *logger.Logger, client llm.Client, cfg GeneratorConfig) QuizGenerator {
	temperature := quizTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &quizGenerator{
		log:         log.With("service", "QuizGenerator"),
		client:      client,
		tracer:      otel.Tracer("quizmind/services"),
		temperature: temperature,
		timeout:     timeout,
		variation:   func() int { return rand.IntN(maxVariation) + 1 },
	}
}

func (g *quizGenerator) Model() string { return g.client.Model() }

func (g *quizGenerator) Temperature() float64 { return g.temperature }

func (g *quizGenerator) Generate(ctx context.Context, topic string, count int, difficulty string) ([]QuestionDraft, error) {
	ctx, span := g.tracer.Start(ctx, "quiz.generate", trace.WithAttributes(
		attribute.String("quiz.topic", topic),
		attribute.Int("quiz.count", count),
		attribute.String("quiz.difficulty", difficulty),
		attribute.String("llm.model", g.client.Model()),
	))
	defer span.End()

	drafts, err := g.generate(ctx, topic, count, difficulty)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("quiz.drafts", len(drafts)))
	return drafts, nil
}

func (g *quizGenerator) generate(ctx context.Context, topic string, count int, difficulty string) ([]QuestionDraft, error) {
	if count < 1 {
		return nil, &GenerationError{Kind: GenerationMalformed, Err: fmt.Errorf("count must be positive, got %d", count)}
	}
	prompt := buildQuizPrompt(topic, count, difficulty, g.variation())

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.client.GenerateText(callCtx, quizSystemInstruction, prompt, g.temperature)
	if err != nil {
		kind := GenerationUpstream
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			kind = GenerationTimeout
		}
		g.log.Warn("quiz generation call failed", "kind", kind, "topic", topic, "count", count, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return nil, &GenerationError{Kind: kind, Err: err}
	}

	drafts, err := decodeQuestionPayload(raw, count)
	if err != nil {
		g.log.Warn("quiz generation payload rejected", "topic", topic, "count", count, "raw_chars", len(raw), "error", err)
		return nil, &GenerationError{Kind: GenerationMalformed, Err: err}
	}
	g.log.Debug("quiz generated", "topic", topic, "count", len(drafts), "duration_ms", time.Since(start).Milliseconds())
	return drafts, nil
}
