package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"droppoint-partner-api/internal/logger"
)

// RequestLogger writes one access-log line per request. Portal routes carry
// the authenticated partner id once SessionAuth has run.
func RequestLogger() gin.HandlerFunc {
	accessLog := logger.NewLogger("access")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if id := PartnerID(c); id != 0 {
			fields["partner_id"] = id
		}

		if len(c.Errors) > 0 {
			accessLog.WithFields(fields).Error(c.Errors.String())
		} else {
			accessLog.WithFields(fields).Info("request completed")
		}
	}
}
