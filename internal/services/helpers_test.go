package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/quizmind-backend/internal/data/repos"
	"github.com/yungbote/quizmind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
)

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	block    bool
	calls    int
	system   string
	user     string
	temp     float64
}

func (f *fakeLLM) GenerateText(ctx context.Context, system, user string, temperature float64) (string, error) {
	f.mu.Lock()
	f.calls++
	f.system, f.user, f.temp = system, user, temperature
	block, resp, err := f.block, f.response, f.err
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return resp, err
}

func (f *fakeLLM) Model() string { return "fake-model" }

type fakeLimiter struct {
	allow bool
	err   error
}

func (f fakeLimiter) Allow(context.Context, string) (bool, error) { return f.allow, f.err }
func (f fakeLimiter) Close() error { return nil }

// questionsJSON renders n well-formed items whose correct label cycles A-D.
func questionsJSON(tb testing.TB, n int) string {
	tb.Helper()
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"question": fmt.Sprintf("Question %d?", i+1),
			"options": map[string]string{
				"A": fmt.Sprintf("a%d", i),
				"B": fmt.Sprintf("b%d", i),
				"C": fmt.Sprintf("c%d", i),
				"D": fmt.Sprintf("d%d", i),
			},
			"correct": []string{"A", "B", "C", "D"}[i%4],
		})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		tb.Fatalf("marshal questions: %v", err)
	}
	return string(raw)
}

type testEnv struct {
	db        *gorm.DB
	llm       *fakeLLM
	users     repos.UserRepo
	tokens    repos.UserTokenRepo
	attempts  repos.QuizAttemptRepo
	questions repos.QuestionRepo
	auth      AuthService
	quiz      QuizService
	dashboard DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:        db,
		llm:       &fakeLLM{},
		users:     repos.NewUserRepo(db, log),
		tokens:    repos.NewUserTokenRepo(db, log),
		attempts:  repos.NewQuizAttemptRepo(db, log),
		questions: repos.NewQuestionRepo(db, log),
	}
	auth, err := NewAuthService(db, log, env.users, env.tokens, NewCredentialVerifier(bcrypt.MinCost), "test-secret-test-secret-test-secret", 0)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	env.auth = auth
	gen := NewQuizGenerator(log, env.llm, GeneratorConfig{})
	env.quiz = NewQuizService(db, log, gen, nil, env.attempts, env.questions, QuizConfig{MaxQuestions: 20})
	env.dashboard = NewDashboardService(log, env.users, env.attempts)
	return env
}

func (e *testEnv) register(t *testing.T, username string) *types.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), username, username+"@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return u
}

func (e *testEnv) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func dbcFor() dbctx.Context {
	return dbctx.New(context.Background())
}
