package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizmind-backend/internal/http/middleware"
	"github.com/yungbote/quizmind-backend/internal/http/response"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := ah.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		respondServiceError(c, ah.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"ok": true})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, ah.log, err)
		return
	}
	if err := middleware.SaveSessionToken(c, res.AccessToken); err != nil {
		respondServiceError(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": res.AccessToken,
		"expires_in":   int(ah.authService.AccessTTL().Seconds()),
		"user": gin.H{
			"id":       res.User.ID,
			"username": res.User.Username,
		},
	})
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		respondServiceError(c, ah.log, err)
		return
	}
	if err := middleware.ClearSession(c); err != nil {
		ah.log.Warn("clear session failed", "error", err)
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/me
func (ah *AuthHandler) Me(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rd.UserID, "username": rd.Username})
}
