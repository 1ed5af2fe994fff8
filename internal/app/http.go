package app

import (
	httpX "github.com/yungbote/quizmind-backend/internal/http"
	httpH "github.com/yungbote/quizmind-backend/internal/http/handlers"
	httpMW "github.com/yungbote/quizmind-backend/internal/http/middleware"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Quiz      *httpH.QuizHandler
	Dashboard *httpH.DashboardHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(log, services.Auth),
		Quiz:      httpH.NewQuizHandler(log, services.Quiz, cfg.QuizExposeAnswers),
		Dashboard: httpH.NewDashboardHandler(log, services.Dashboard),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *httpX.Server {
	return httpX.NewServer(":"+cfg.Port, httpX.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Session: httpMW.SessionConfig{
			Secret: cfg.SessionSecret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.CookieSecure,
		},
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		QuizHandler:      handlers.Quiz,
		DashboardHandler: handlers.Dashboard,
	})
}
