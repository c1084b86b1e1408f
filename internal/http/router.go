package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/http/handler"
	httpmiddleware "github.com/tamara-re/Pinterest-Ranker-Backend/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, authHandler *handler.AuthHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	r.Use(httpmiddleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	authGroup := r.Group("/auth")
	{
		pinterest := authGroup.Group("/pinterest")
		{
			pinterest.GET("/start", authHandler.Start)
			pinterest.GET("/callback", authHandler.Callback)
		}

		authGroup.GET("/me", authHandler.Me)
		authGroup.OPTIONS("/me", authHandler.Me)
		authGroup.Any("/logout", authHandler.Logout)
	}

	r.GET("/healthz", authHandler.Health)

	return r
}
