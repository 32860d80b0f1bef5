package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/logger"
	"droppoint-partner-api/internal/utils"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Portal.Errorf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
