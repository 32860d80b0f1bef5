package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/service"
	"droppoint-partner-api/internal/utils"
)

const SessionCookie = "dp_session"

// SessionAuth resolves the portal session (cookie, or Bearer token for API
// clients) and puts the partner id on the context.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		if token == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		partnerID, err := service.ResolveSession(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}
		c.Set("partner_id", partnerID)
		c.Next()
	}
}

// PartnerID reads the authenticated partner id set by SessionAuth.
func PartnerID(c *gin.Context) uint64 {
	v, _ := c.Get("partner_id")
	id, _ := v.(uint64)
	return id
}
