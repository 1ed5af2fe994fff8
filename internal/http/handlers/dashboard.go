package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizmind-backend/internal/http/response"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/services"
)

const maxLeaderboardLimit = 100

type DashboardHandler struct {
	log              *logger.Logger
	dashboardService services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log.With("handler", "DashboardHandler"), dashboardService: dashboardService}
}

// GET /api/dashboard
func (dh *DashboardHandler) Dashboard(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	dash, err := dh.dashboardService.Dashboard(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, dh.log, err)
		return
	}
	response.RespondOK(c, dash)
}

// GET /api/history
func (dh *DashboardHandler) History(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	history, err := dh.dashboardService.History(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, dh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"history": history})
}

// GET /api/leaderboard?limit=10
func (dh *DashboardHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	limit = min(limit, maxLeaderboardLimit)
	rows, err := dh.dashboardService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, dh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"leaderboard": rows})
}
