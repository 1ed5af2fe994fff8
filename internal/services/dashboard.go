package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/yungbote/quizmind-backend/internal/data/repos"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

const (
	NoAttemptsYet          = "No attempts yet"
	recentActivityLimit    = 5
	defaultLeaderboardSize = 10
)

type DashboardStats struct {
	TotalQuizzes int     `json:"total_quizzes"`
	BestScore    int     `json:"best_score"`
	AvgScore     float64 `json:"avg_score"`
	LastAttempt  string  `json:"last_attempt"`
}

type AttemptSummary struct {
	Position       int       `json:"position,omitempty"`
	ID             uuid.UUID `json:"id"`
	Topic          string    `json:"topic"`
	Difficulty     string    `json:"difficulty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Finalized      bool      `json:"finalized"`
	TakenAt        time.Time `json:"taken_at"`
}

type Dashboard struct {
	Username       string           `json:"username"`
	Stats          DashboardStats   `json:"stats"`
	RecentActivity []AttemptSummary `json:"recent_activity"`
}

// ComputeStats summarizes attempts. The result does not depend on input order.
func ComputeStats(attempts []*types.QuizAttempt) (DashboardStats, []AttemptSummary) {
	rows := lo.Filter(attempts, func(a *types.QuizAttempt, _ int) bool { return a != nil })
	if len(rows) == 0 {
		return DashboardStats{LastAttempt: NoAttemptsYet}, []AttemptSummary{}
	}
	rows = slices.Clone(rows)
	slices.SortStableFunc(rows, func(a, b *types.QuizAttempt) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	best := lo.MaxBy(rows, func(a, b *types.QuizAttempt) bool { return a.Score > b.Score })
	sum := lo.SumBy(rows, func(a *types.QuizAttempt) int64 { return int64(a.Score) })
	// The mean is rounded from its exact binary value, ties to even.
	mean := float64(sum) / float64(len(rows))
	avg := decimal.NewFromFloatWithExponent(mean, -30).RoundBank(2)

	stats := DashboardStats{
		TotalQuizzes: len(rows),
		BestScore:    best.Score,
		AvgScore:     avg.InexactFloat64(),
		LastAttempt:  rows[0].CreatedAt.UTC().Format(time.RFC3339),
	}
	recent := lo.Map(rows[:min(len(rows), recentActivityLimit)], func(a *types.QuizAttempt, i int) AttemptSummary {
		s := summarizeAttempt(a)
		s.Position = i + 1
		return s
	})
	return stats, recent
}

func summarizeAttempt(a *types.QuizAttempt) AttemptSummary {
	return AttemptSummary{
		ID:             a.ID,
		Topic:          a.Topic,
		Difficulty:     a.Difficulty,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Finalized:      a.IsFinalized(),
		TakenAt:        a.CreatedAt.UTC(),
	}
}

type DashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	History(ctx context.Context, userID uuid.UUID) ([]AttemptSummary, error)
	Leaderboard(ctx context.Context, limit int) ([]repos.LeaderboardRow, error)
}

type dashboardService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	attemptRepo repos.QuizAttemptRepo
}

func NewDashboardService(log *logger.Logger, userRepo repos.UserRepo, attemptRepo repos.QuizAttemptRepo) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		log:         serviceLog,
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
	}
}

func (ds *dashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	dbc := dbctx.New(ctx)
	users, err := ds.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUnauthorized
	}
	attempts, err := ds.attemptRepo.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	stats, recent := ComputeStats(attempts)
	return &Dashboard{
		Username:       users[0].Username,
		Stats:          stats,
		RecentActivity: recent,
	}, nil
}

func (ds *dashboardService) History(ctx context.Context, userID uuid.UUID) ([]AttemptSummary, error) {
	attempts, err := ds.attemptRepo.ListByUserID(dbctx.New(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	return lo.Map(attempts, func(a *types.QuizAttempt, _ int) AttemptSummary {
		return summarizeAttempt(a)
	}), nil
}

func (ds *dashboardService) Leaderboard(ctx context.Context, limit int) ([]repos.LeaderboardRow, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	rows, err := ds.attemptRepo.Leaderboard(dbctx.New(ctx), limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	if rows == nil {
		rows = []repos.LeaderboardRow{}
	}
	return rows, nil
}
