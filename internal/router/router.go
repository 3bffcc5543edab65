// Package router wires handlers and middleware onto echo.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/config"
	"github.com/trialvo/trialvo-backend/internal/handler"
	"github.com/trialvo/trialvo-backend/internal/middleware"
)

// Deps carries everything the routes need.  Redis may be nil, which turns
// caching and rate limiting off.
type Deps struct {
	Auth         *handler.AuthHandler
	Products     *handler.ProductHandler
	Orders       *handler.OrderHandler
	Testimonials *handler.TestimonialHandler
	Messages     *handler.MessageHandler
	Dashboard    *handler.DashboardHandler

	Verifier middleware.TokenVerifier
	Admins   middleware.AdminLookup
	DB       handler.Pinger

	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Log       *zap.Logger
}

// Register mounts every route under /api.
func Register(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	api.GET("/health", handler.Health(d.DB))

	RegisterPublic(api, d)
	RegisterAuth(api, d)
	RegisterAdmin(api, d)
}

// RegisterPublic mounts the storefront endpoints.  Catalog reads go through
// the response cache; writes from anonymous clients are rate limited.
func RegisterPublic(api *echo.Group, d Deps) {
	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log)

	products := api.Group("/products", cache)
	products.GET("", d.Products.List)
	products.GET("/featured", d.Products.Featured)
	products.GET("/:slug", d.Products.Get)
	products.GET("/:slug/related", d.Products.Related)

	api.GET("/testimonials", d.Testimonials.List, cache)

	api.POST("/orders", d.Orders.Create, limit)
	api.GET("/orders/:orderId", d.Orders.Get)

	api.POST("/contact", d.Messages.Create, limit)
}

// RegisterAuth mounts login and the signed-in admin's account routes.
func RegisterAuth(api *echo.Group, d Deps) {
	g := api.Group("/auth")
	g.POST("/login", d.Auth.Login, middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))

	me := g.Group("", middleware.JWTAuth(d.Verifier, d.Admins))
	me.GET("/me", d.Auth.Me)
	me.PUT("/profile", d.Auth.UpdateProfile)
	me.PUT("/password", d.Auth.ChangePassword)
}
