package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/applications"
	"regportal-backend/internal/documents"
	"regportal-backend/internal/regbodies"
	"regportal-backend/internal/replay"
	"regportal-backend/internal/shared/config"
	"regportal-backend/internal/shared/metrics"
	"regportal-backend/internal/shared/server/middleware"
	"regportal-backend/internal/shared/server/respond"
	"regportal-backend/internal/ussd"
	"regportal-backend/internal/users"
)

// Handlers collects every route handler the router mounts.
type Handlers struct {
	Users        *users.Handler
	Documents    *documents.Handler
	Applications *applications.Handler
	Replay       *replay.Handler
	USSD         *ussd.Handler
	RegBodies    *regbodies.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(loginRateLimit()))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	api.GET("/metrics", metrics.Handler())

	h.Users.RegisterPublicRoutes(api)
	h.USSD.RegisterRoutes(api)
	h.RegBodies.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth())
	h.Users.RegisterRoutes(protected)
	h.Documents.RegisterRoutes(protected)
	h.Applications.RegisterRoutes(protected)
	h.Replay.RegisterRoutes(protected)

	if cfg.StaticDir != "" {
		registerStatic(r, cfg.StaticDir)
	}

	return r
}

// loginRateLimit throttles credential guessing on the login endpoint. All
// other routes fall into the default group, which carries no rule.
func loginRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"LOGIN": {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/login" {
				return "LOGIN"
			}
			return ""
		},
	}
}

// registerStatic serves the built frontend. Unknown non-API paths fall back
// to index.html so the client-side router owns them.
func registerStatic(r *gin.Engine, dir string) {
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}
		requested := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
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
