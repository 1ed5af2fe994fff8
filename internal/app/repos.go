package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/quizmind-backend/internal/data/repos"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	UserToken   repos.UserTokenRepo
	QuizAttempt repos.QuizAttemptRepo
	Question    repos.QuestionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		UserToken:   repos.NewUserTokenRepo(db, log),
		QuizAttempt: repos.NewQuizAttemptRepo(db, log),
		Question:    repos.NewQuestionRepo(db, log),
	}
}
