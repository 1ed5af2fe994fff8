package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/quizmind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/quizmind-backend/internal/domain"
)

func attemptsWithScores(base time.Time, scores ...int) []*types.QuizAttempt {
	out := make([]*types.QuizAttempt, 0, len(scores))
	for i, s := range scores {
		out = append(out, &types.QuizAttempt{
			ID:             uuid.New(),
			Topic:          "t",
			Score:          s,
			TotalQuestions: 10,
			CreatedAt:      base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestComputeStatsEmpty(t *testing.T) {
	stats, recent := ComputeStats(nil)
	if stats.TotalQuizzes != 0 || stats.BestScore != 0 || stats.AvgScore != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.LastAttempt != NoAttemptsYet {
		t.Fatalf("last attempt: got=%q want=%q", stats.LastAttempt, NoAttemptsYet)
	}
	if recent == nil || len(recent) != 0 {
		t.Fatalf("expected empty recent activity, got %v", recent)
	}
}

func TestComputeStatsScores(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	stats, recent := ComputeStats(attemptsWithScores(base, 10, 7, 9))
	if stats.TotalQuizzes != 3 || stats.BestScore != 10 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 8.67 {
		t.Fatalf("avg: got=%v want=8.67", stats.AvgScore)
	}
	if stats.LastAttempt != "2026-03-01T09:30:00Z" {
		t.Fatalf("last attempt: got=%q", stats.LastAttempt)
	}
	if len(recent) != 3 || recent[0].Position != 1 || recent[2].Position != 3 || recent[0].Score != 10 {
		t.Fatalf("unexpected recent activity: %+v", recent)
	}
}

func TestComputeStatsAverageTiesRoundToEven(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	zeros := func(n int) []int { return make([]int, n) }
	cases := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"one over eight", append([]int{1}, zeros(7)...), 0.12},
		{"three over eight", append([]int{3}, zeros(7)...), 0.38},
		{"five over eight", append([]int{5}, zeros(7)...), 0.62},
		// 0.025 is stored slightly above the tie, so it rounds up.
		{"one over forty", append([]int{1}, zeros(39)...), 0.03},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats, _ := ComputeStats(attemptsWithScores(base, tc.scores...))
			if stats.AvgScore != tc.want {
				t.Fatalf("avg: got=%v want=%v", stats.AvgScore, tc.want)
			}
		})
	}
}

func TestComputeStatsCapsRecentAndSorts(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	attempts := attemptsWithScores(base, 1, 2, 3, 4, 5, 6, 7)
	// Reverse so the newest attempt comes last.
	for i, j := 0, len(attempts)-1; i < j; i, j = i+1, j-1 {
		attempts[i], attempts[j] = attempts[j], attempts[i]
	}
	stats, recent := ComputeStats(attempts)
	if stats.TotalQuizzes != 7 || stats.AvgScore != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(recent) != 5 || recent[0].Score != 1 || recent[4].Score != 5 {
		t.Fatalf("expected newest five first, got %+v", recent)
	}
}

func TestDashboardHistoryLeaderboard(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "fiona")
	other := env.register(t, "gus")

	dash, err := env.dashboard.Dashboard(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Username != "fiona" || dash.Stats.LastAttempt != NoAttemptsYet {
		t.Fatalf("unexpected empty dashboard: %+v", dash)
	}

	base := time.Now().UTC().Truncate(time.Second)
	ctx := context.Background()
	testutil.SeedQuizAttempt(t, ctx, env.db, u.ID, "old", 3, 5, base.Add(-time.Hour))
	testutil.SeedQuizAttempt(t, ctx, env.db, u.ID, "new", 5, 5, base)
	testutil.SeedQuizAttempt(t, ctx, env.db, other.ID, "gus", 4, 5, base)

	history, err := env.dashboard.History(ctx, u.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Topic != "new" || history[1].Topic != "old" {
		t.Fatalf("unexpected history: %+v", history)
	}

	dash, err = env.dashboard.Dashboard(ctx, u.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Stats.TotalQuizzes != 2 || dash.Stats.BestScore != 5 || dash.Stats.AvgScore != 4 {
		t.Fatalf("unexpected dashboard stats: %+v", dash.Stats)
	}

	board, err := env.dashboard.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) < 3 {
		t.Fatalf("expected at least 3 leaderboard rows, got %d", len(board))
	}
	found := false
	for i, row := range board {
		if i > 0 && row.Score > board[i-1].Score {
			t.Fatalf("leaderboard not sorted by score: %+v", board)
		}
		found = found || (row.Username == "fiona" && row.Score == 5)
	}
	if !found {
		t.Fatalf("expected fiona's best attempt on the leaderboard: %+v", board)
	}
}
