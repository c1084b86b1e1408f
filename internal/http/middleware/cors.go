package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
)

// CORS applies the browser-facing headers for the configured frontend origin.
// Credentialed requests require an exact origin, never a wildcard. Preflight
// requests are answered with 204 and never reach the handlers.
func CORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.FrontendOrigin != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", cfg.FrontendOrigin)
			header.Set("Access-Control-Allow-Credentials", "true")
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			header.Set("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
