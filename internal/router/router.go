package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/handler"
	"github.com/rgehrsitz/itrgo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	healthH *handler.HealthHandler,
	taxH *handler.TaxHandler,
	profileH *handler.ProfileHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))

	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	v1.POST("/tax/calculate", taxH.Calculate)

	profile := v1.Group("/profile")
	profile.GET("", profileH.Get)
	profile.PUT("", profileH.Put)
	profile.DELETE("", profileH.Delete)
	profile.GET("/dump", profileH.Dump)

	return r
}
