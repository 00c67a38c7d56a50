package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"voiceguard/detection"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "x-api-key"

// RequireAPIKey rejects requests whose x-api-key header does not match secret.
// An empty secret rejects every request.
func RequireAPIKey(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(strings.TrimSpace(c.GetHeader(apiKeyHeader)))
		if len(want) == 0 || len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			respondWithError(c, http.StatusUnauthorized, detection.KindUnauthorized, "Unauthorized - Invalid API Key")
			c.Abort()
			return
		}
		c.Next()
	}
}
