package router

import (
	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/middleware"
	"github.com/trialvo/trialvo-backend/internal/model"
)

// RegisterAdmin mounts the admin panel API.  Every route needs a valid token
// and a known role; deletions are limited to super admins and admins.
// Successful writes purge the storefront cache.
func RegisterAdmin(api *echo.Group, d Deps) {
	g := api.Group("/admin",
		middleware.JWTAuth(d.Verifier, d.Admins),
		middleware.RequireRole(model.Roles...),
		middleware.PurgeCache(d.Cache, d.Redis, d.Log),
	)
	canDelete := middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin)

	g.GET("/dashboard", d.Dashboard.Stats)

	g.GET("/products", d.Products.AdminList)
	g.POST("/products", d.Products.Create)
	g.PUT("/products/:id", d.Products.Update)
	g.DELETE("/products/:id", d.Products.Delete, canDelete)

	g.GET("/orders", d.Orders.AdminList)
	g.PUT("/orders/:id/status", d.Orders.UpdateStatus)

	g.GET("/testimonials", d.Testimonials.AdminList)
	g.POST("/testimonials", d.Testimonials.Create)
	g.PUT("/testimonials/:id", d.Testimonials.Update)
	g.DELETE("/testimonials/:id", d.Testimonials.Delete, canDelete)

	g.GET("/messages", d.Messages.AdminList)
	g.GET("/messages/unread-count", d.Messages.UnreadCount)
	g.PUT("/messages/:id/read", d.Messages.MarkRead)
	g.DELETE("/messages/:id", d.Messages.Delete, canDelete)
}
