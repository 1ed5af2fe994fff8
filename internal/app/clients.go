package app

import (
	"fmt"

	"github.com/yungbote/quizmind-backend/internal/platform/llm"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/platform/ratelimit"
)

type Clients struct {
	LLM     llm.Client
	Limiter ratelimit.Limiter
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	llmClient, err := llm.NewClient(log, llm.Config{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init llm client: %w", err)
	}

	// Redis
	limiter := ratelimit.Noop()
	if cfg.RedisAddr != "" {
		l, err := ratelimit.NewRedisLimiter(log, ratelimit.Config{
			Addr:   cfg.RedisAddr,
			Limit:  cfg.QuizGenerationLimit,
			Window: cfg.QuizGenerationWindow,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis limiter: %w", err)
		}
		limiter = l
	} else {
		log.Info("REDIS_ADDR not set, quiz generation is not rate limited")
	}

	return Clients{
		LLM:     llmClient,
		Limiter: limiter,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Limiter != nil {
		_ = c.Limiter.Close()
	}
}
