package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/visapath/core/internal/pkg/response"
)

// CronSecretHeader carries the shared secret of the external trigger.
const CronSecretHeader = "X-Cron-Secret"

// CronSecret returns a middleware that authenticates the out-of-process
// publish trigger. An empty configured secret disables the trigger routes
// entirely rather than leaving them open.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.Unauthorized(c)
			return
		}
		got := c.GetHeader(CronSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
