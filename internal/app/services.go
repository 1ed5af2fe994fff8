package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Quiz      services.QuizService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	auth, err := services.NewAuthService(
		db,
		log,
		repos.User,
		repos.UserToken,
		services.NewCredentialVerifier(cfg.BcryptCost),
		cfg.SessionSecret,
		cfg.SessionTTL,
	)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	generator := services.NewQuizGenerator(log, clients.LLM, services.GeneratorConfig{
		Temperature: &cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	})
	quiz := services.NewQuizService(
		db,
		log,
		generator,
		clients.Limiter,
		repos.QuizAttempt,
		repos.Question,
		services.QuizConfig{MaxQuestions: cfg.QuizMaxQuestions},
	)

	return Services{
		Auth:      auth,
		Quiz:      quiz,
		Dashboard: services.NewDashboardService(log, repos.User, repos.QuizAttempt),
	}, nil
}
