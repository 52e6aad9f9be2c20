package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/restaurant-admin/internal/menu"
	"github.com/jwalitptl/restaurant-admin/internal/middleware"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

// Handlers are the route groups of the console. Screens maps a menu key
// to the handler serving it under /<key>.
type Handlers struct {
	Health    Handler
	Metrics   Handler
	Auth      PublicHandler
	Menu      Handler
	Dashboard Handler
	Screens   map[string]Handler
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
}

type RouterConfig struct {
	RateLimit   rate.Limit
	RateBurst   int
	CORSConfig  middleware.CORSConfig
	Timeout     time.Duration
	MaxBodySize int64
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config RouterConfig) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.SizeLimit(middleware.SizeLimitConfig{MaxBodySize: config.MaxBodySize}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	if r.handlers.Metrics != nil {
		r.handlers.Metrics.RegisterRoutes(&r.engine.RouterGroup)
	}

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(api)
	}

	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.handlers.Auth.RegisterPublicRoutes(rg)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.handlers.Auth.RegisterRoutes(rg)
	r.handlers.Menu.RegisterRoutes(rg)

	if r.handlers.Dashboard != nil {
		dashboard := rg.Group("/dashboard", r.auth.RequireScreen(menu.Dashboard))
		r.handlers.Dashboard.RegisterRoutes(dashboard)
	}

	for key, h := range r.handlers.Screens {
		group := rg.Group("/"+key, r.auth.RequireScreen(key))
		h.RegisterRoutes(group)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
