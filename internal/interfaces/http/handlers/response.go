package handlers

import (
	"net/http"
	"strconv"

	"github.com/gamevault/game-library-backend/internal/interfaces/http/middleware"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// respond writes the success envelope
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// respondError maps err to its HTTP status and writes the error envelope.
// Internal causes are attached to the gin context for the access log and
// never returned to the client.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	message := appErr.Message
	if message == "" {
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"code":  appErr.Code,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"code":    apperror.CodeInvalidArgument,
		"details": err.Error(),
	})
}

// paramID parses a positive numeric path parameter, writing 400 on failure
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, apperror.InvalidArgument("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user id, writing 401 when absent
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperror.Unauthorized("User not authenticated"))
		return 0, false
	}
	return userID, true
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
