package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uigen-backend/internal/admission"
	"uigen-backend/internal/generations"
	"uigen-backend/internal/shared/config"
	"uigen-backend/internal/shared/metrics"
	"uigen-backend/internal/shared/server/middleware"
	"uigen-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers into router construction.
type RouterDeps struct {
	Config            config.Config
	Admission         *admission.Controller
	GenerationHandler *generations.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	// Admission control gates the pipeline before any other processing; the
	// read-only surfaces stay outside it.
	gated := r.Group("/")
	gated.Use(middleware.RateLimit(deps.Admission))
	deps.GenerationHandler.RegisterRoutes(gated)

	api := r.Group("/api/v1")
	deps.GenerationHandler.RegisterHistoryRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
