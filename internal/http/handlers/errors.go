package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizmind-backend/internal/http/response"
	"github.com/yungbote/quizmind-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/services"
)

var errInternal = errors.New("internal server error")

// respondServiceError maps service failures onto the error envelope. Unknown
// errors are logged and hidden behind a generic 500.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	if ge, ok := services.AsGenerationError(err); ok {
		log.Warn("quiz generation failed", "kind", ge.Kind, "error", ge.Err)
		response.RespondError(c, http.StatusBadGateway, "generation_failed", errors.New("quiz generation failed ("+string(ge.Kind)+"), please try again"))
		return
	}
	if response.RespondAPIError(c, err) {
		return
	}
	_ = c.Error(err)
	fields := append([]interface{}{"route", c.FullPath(), "error", err}, ctxutil.GetRequestData(c.Request.Context()).LogFields()...)
	log.Error("request failed", fields...)
	response.RespondError(c, http.StatusInternalServerError, "internal_error", errInternal)
}

func respondBindError(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
}

// currentUser returns the authenticated caller or writes a 401.
func currentUser(c *gin.Context) (*ctxutil.RequestData, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if !rd.Authenticated() {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
		return nil, false
	}
	return rd, true
}
