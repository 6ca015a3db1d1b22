package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gide-backend/internal/auth"
	"gide-backend/internal/dashboard"
	"gide-backend/internal/passwordreset"
	"gide-backend/internal/resumes"
	sharedauth "gide-backend/internal/shared/auth"
	"gide-backend/internal/shared/config"
	"gide-backend/internal/shared/metrics"
	"gide-backend/internal/shared/server/middleware"
	"gide-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers and shared services the router wires up.
type RouterDeps struct {
	Config           config.Config
	Issuer           *sharedauth.Issuer
	AuthHandler      *auth.Handler
	GoogleAuth       *auth.GoogleService
	ResetHandler     *passwordreset.Handler
	ResumeHandler    *resumes.Handler
	DashboardHandler *dashboard.Handler
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

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	deps.AuthHandler.RegisterRoutes(api)
	deps.GoogleAuth.RegisterRoutes(api)
	deps.ResetHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Issuer))
	deps.ResumeHandler.RegisterRoutes(protected)
	deps.DashboardHandler.RegisterRoutes(protected)

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
