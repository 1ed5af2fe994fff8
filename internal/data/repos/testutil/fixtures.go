package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedQuizAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, topic string, score, total int, takenAt time.Time) *types.QuizAttempt {
	tb.Helper()
	a := &types.QuizAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		Topic:          topic,
		Difficulty:     "medium",
		Score:          score,
		TotalQuestions: total,
		CreatedAt:      takenAt,
		UpdatedAt:      takenAt,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed quiz attempt: %v", err)
	}
	return a
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, attemptID uuid.UUID, index int, correct string) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:            uuid.New(),
		QuizAttemptID: attemptID,
		Index:         index,
		QuestionText:  "question",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: correct,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}
