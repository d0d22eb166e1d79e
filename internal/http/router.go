package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/config"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/http/handler"
	httpmiddleware "github.com/PayAidPayments/PayAid-V3-sub021/internal/http/middleware"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, accessHandler *handler.AccessHandler, authMiddleware *httpmiddleware.Auth, rateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/healthz", accessHandler.Health)
	r.GET("/v1/modules", accessHandler.Registry)

	access := r.Group("/v1/access", authMiddleware.Authenticate)
	{
		access.POST("/check", accessHandler.Check)
		access.GET("/check/:module", accessHandler.CheckModule)
		access.GET("/modules", accessHandler.LicensedModules)
	}

	return r
}
