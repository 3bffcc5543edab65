package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/model"
)

type adminKey struct{}

// WithAdmin returns a copy of ctx carrying the authenticated admin.
func WithAdmin(ctx context.Context, a model.Admin) context.Context {
	return context.WithValue(ctx, adminKey{}, a)
}

// AdminFrom returns the admin stored by JWTAuth, if any.
func AdminFrom(ctx context.Context) (model.Admin, bool) {
	a, ok := ctx.Value(adminKey{}).(model.Admin)
	return a, ok
}

// userID identifies the caller for rate-limit keys; "anon" when the
// request is not authenticated.
func userID(c echo.Context) string {
	if a, ok := AdminFrom(c.Request().Context()); ok && a.ID != "" {
		return a.ID
	}
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return "anon"
}
