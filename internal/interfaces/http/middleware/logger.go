// internal/interfaces/http/middleware/logger.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger logs every completed request through logrus
func Logger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id":    c.GetString(contextRequestID),
			"method":        c.Request.Method,
			"path":          path,
			"status_code":   status,
			"latency":       time.Since(start).String(),
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
			"response_size": c.Writer.Size(),
		})

		if userID, ok := GetUserIDFromContext(c); ok {
			entry = entry.WithField("user_id", userID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			entry = entry.WithField("error", errs.String())
		}

		switch {
		case status >= 500:
			entry.Error("HTTP request completed with server error")
		case status >= 400:
			entry.Warn("HTTP request completed with client error")
		default:
			entry.Info("HTTP request completed")
		}
	}
}
