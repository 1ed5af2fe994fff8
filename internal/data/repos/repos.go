package repos

import (
	"github.com/yungbote/quizmind-backend/internal/data/repos/auth"
	"github.com/yungbote/quizmind-backend/internal/data/repos/quiz"
	"github.com/yungbote/quizmind-backend/internal/data/repos/user"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type QuizAttemptRepo = quiz.QuizAttemptRepo
type QuestionRepo = quiz.QuestionRepo
type LeaderboardRow = quiz.LeaderboardRow

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return quiz.NewQuizAttemptRepo(db, baseLog)
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return quiz.NewQuestionRepo(db, baseLog)
}
