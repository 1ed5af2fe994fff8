package domain

import (
	"github.com/yungbote/quizmind-backend/internal/domain/auth"
	"github.com/yungbote/quizmind-backend/internal/domain/quiz"
	"github.com/yungbote/quizmind-backend/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type QuizAttempt = quiz.QuizAttempt
type Question = quiz.Question

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&User{},
		&UserToken{},
		&QuizAttempt{},
		&Question{},
	}
}
