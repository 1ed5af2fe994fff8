package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/quizmind-backend/internal/http/handlers"
	httpMW "github.com/yungbote/quizmind-backend/internal/http/middleware"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Session        httpMW.SessionConfig

	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	QuizHandler      *httpH.QuizHandler
	DashboardHandler *httpH.DashboardHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestData())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.Sessions(cfg.Session))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
		if cfg.DashboardHandler != nil {
			api.GET("/leaderboard", cfg.DashboardHandler.Leaderboard)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		// Quiz
		if cfg.QuizHandler != nil {
			protected.POST("/quizzes", cfg.QuizHandler.StartQuiz)
			protected.GET("/quizzes/:id", cfg.QuizHandler.GetQuiz)
			protected.POST("/quizzes/:id/finalize", cfg.QuizHandler.Finalize)
			protected.POST("/answers", cfg.QuizHandler.SaveAnswer)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard", cfg.DashboardHandler.Dashboard)
			protected.GET("/history", cfg.DashboardHandler.History)
		}
	}

	return r
}
