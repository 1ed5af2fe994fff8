package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/quizmind-backend/internal/data/db"
	"github.com/yungbote/quizmind-backend/internal/platform/envutil"
	"github.com/yungbote/quizmind-backend/internal/platform/llm"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

const minSessionSecretBytes = 32

type Config struct {
	Port        string
	Environment string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	CORSAllowedOrigins []string

	DB db.Config

	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMTemperature float64
	LLMTimeout     time.Duration

	BcryptCost int

	QuizMaxQuestions  int
	QuizExposeAnswers bool

	RedisAddr            string
	QuizGenerationLimit  int
	QuizGenerationWindow time.Duration
}

// LoadConfig reads the environment and rejects configurations the server
// cannot run with.
func LoadConfig(log *logger.Logger) (Config, error) {
	secret, err := envutil.Required("SESSION_SECRET")
	if err != nil {
		return Config{}, err
	}
	if len(secret) < minSessionSecretBytes {
		return Config{}, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretBytes)
	}
	apiKey, err := envutil.Required("GROQ_API_KEY", "LLM_API_KEY")
	if err != nil {
		return Config{}, err
	}

	driver := strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres, log))
	if driver != db.DriverPostgres && driver != db.DriverSQLite {
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, driver)
	}

	cfg := Config{
		Port:        envutil.String("PORT", "8080", log),
		Environment: envutil.String("ENVIRONMENT", "development", log),

		SessionSecret: secret,
		SessionTTL:    time.Duration(envutil.Int("SESSION_TTL_SECONDS", 86400, log)) * time.Second,
		CookieSecure:  envutil.Bool("COOKIE_SECURE", false),

		CORSAllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),

		DB: db.Config{
			Driver:           driver,
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", nil),
			PostgresName:     envutil.String("POSTGRES_NAME", "quizmind", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "quizmind.db", log),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 20, log),
			MaxIdleConns:     envutil.Int("DB_MAX_IDLE_CONNS", 5, log),
			ConnMaxLifetime:  time.Duration(envutil.Int("DB_CONN_MAX_LIFETIME_SECONDS", 1800, log)) * time.Second,
		},

		LLMAPIKey:      apiKey,
		LLMBaseURL:     envutil.String("LLM_BASE_URL", llm.DefaultBaseURL, log),
		LLMModel:       envutil.String("LLM_MODEL", llm.DefaultModel, log),
		LLMTemperature: envutil.Float("LLM_TEMPERATURE", 0.9, log),
		LLMTimeout:     time.Duration(envutil.Int("LLM_TIMEOUT_SECONDS", 60, log)) * time.Second,

		BcryptCost: envutil.Int("BCRYPT_COST", 10, log),

		QuizMaxQuestions:  envutil.Int("QUIZ_MAX_QUESTIONS", 20, log),
		QuizExposeAnswers: envutil.Bool("QUIZ_EXPOSE_ANSWERS", true),

		RedisAddr:            envutil.String("REDIS_ADDR", "", log),
		QuizGenerationLimit:  envutil.Int("QUIZ_GENERATION_LIMIT", 10, log),
		QuizGenerationWindow: time.Duration(envutil.Int("QUIZ_GENERATION_WINDOW_SECONDS", 3600, log)) * time.Second,
	}

	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL_SECONDS must be positive")
	}
	if cfg.LLMTimeout <= 0 {
		return Config{}, fmt.Errorf("LLM_TIMEOUT_SECONDS must be positive")
	}
	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		return Config{}, fmt.Errorf("LLM_TEMPERATURE must be within [0, 2], got %v", cfg.LLMTemperature)
	}
	if cfg.QuizMaxQuestions < 1 {
		return Config{}, fmt.Errorf("QUIZ_MAX_QUESTIONS must be at least 1")
	}
	return cfg, nil
}
