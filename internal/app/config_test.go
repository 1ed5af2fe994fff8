package app

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/quizmind-backend/internal/data/db"
	"github.com/yungbote/quizmind-backend/internal/platform/llm"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("LLM_API_KEY", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	for _, name := range []string{"DB_DRIVER", "PORT", "LLM_MODEL", "LLM_BASE_URL", "QUIZ_EXPOSE_ANSWERS", "QUIZ_MAX_QUESTIONS", "REDIS_ADDR", "LLM_TIMEOUT_SECONDS"} {
		t.Setenv(name, "")
	}
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DB.Driver != db.DriverPostgres || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: driver=%q port=%q", cfg.DB.Driver, cfg.Port)
	}
	if cfg.LLMModel != llm.DefaultModel || cfg.LLMBaseURL != llm.DefaultBaseURL || cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("unexpected llm defaults: %+v", cfg)
	}
	if !cfg.QuizExposeAnswers || cfg.QuizMaxQuestions != 20 || cfg.RedisAddr != "" {
		t.Fatalf("unexpected quiz defaults: %+v", cfg)
	}
}

func TestLoadConfigFailsFast(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {"SESSION_SECRET": ""},
		"short secret":   {"SESSION_SECRET": "too-short"},
		"missing key":    {"GROQ_API_KEY": ""},
		"bad driver":     {"DB_DRIVER": "mysql"},
		"bad max":        {"QUIZ_MAX_QUESTIONS": "0"},
		"negative temp":  {"LLM_TEMPERATURE": "-0.1"},
		"temp above two": {"LLM_TEMPERATURE": "2.5"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(nil); err == nil {
				t.Fatalf("expected LoadConfig to fail")
			}
		})
	}
}

func TestLoadConfigAcceptsZeroTemperature(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_TEMPERATURE", "0")
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLMTemperature != 0 {
		t.Fatalf("temperature: got=%v want=0", cfg.LLMTemperature)
	}
}

func TestLoadConfigSQLiteAndLLMKeyFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("LLM_API_KEY", "sk-other")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/quiz.db")
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLMAPIKey != "sk-other" || cfg.DB.Driver != db.DriverSQLite || cfg.DB.SQLitePath != "/tmp/quiz.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
