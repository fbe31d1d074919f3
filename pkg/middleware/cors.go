package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const edgeAllowHeaders = "authorization, x-client-info, apikey, content-type"

// EdgeCORS stamps the permissive CORS headers on every response, including
// errors and requests without an Origin, and answers preflights with an empty 200.
func EdgeCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", edgeAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			c.Abort()
			return
		}

		c.Next()
	}
}
