package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/utils"
)

const replayWindow = 5 * time.Minute

// InternalAuth guards the admin surface. Callers send a millisecond
// X-Timestamp inside the replay window and sign the raw body with
// hmac-sha256 over the shared secret, hex digest in X-Signature.
func InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ts, err := utils.ParseTimestampMs(c.GetHeader("X-Timestamp"))
		if err != nil || !utils.IsTimestampValid(ts, replayWindow) {
			c.JSON(http.StatusForbidden, utils.Error(constant.CodeForbidden))
			c.Abort()
			return
		}

		sig := c.GetHeader("X-Signature")
		if sig == "" {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}

		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(config.C.Security.InternalHMACSecret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(expected), []byte(sig)) {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}
		c.Next()
	}
}
