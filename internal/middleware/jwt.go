package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/repository"
	"github.com/trialvo/trialvo-backend/internal/utils"
)

// Rejection messages returned by JWTAuth.  Clients match on them, keep them
// stable.
const (
	MsgNoToken       = "access denied: no token provided"
	MsgInvalidToken  = "invalid token"
	MsgTokenExpired  = "token expired"
	MsgAdminNotFound = "invalid token: admin not found"
)

// TokenVerifier is satisfied by *utils.TokenIssuer.
type TokenVerifier interface {
	Verify(raw string) (*utils.Claims, error)
}

// AdminLookup resolves a token subject to a current admin.  It must return
// repository.ErrNotFound for unknown ids.
type AdminLookup interface {
	Lookup(ctx context.Context, id string) (model.Admin, error)
}

// JWTAuth validates the Bearer token and attaches the admin principal to
// the request context.  The principal is read from the store on every
// request so a deleted admin loses access immediately.
func JWTAuth(verifier TokenVerifier, lookup AdminLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			raw = strings.TrimSpace(raw)
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgNoToken)
			}

			claims, err := verifier.Verify(raw)
			switch {
			case errors.Is(err, utils.ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenExpired)
			case err != nil:
				return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidToken)
			}

			req := c.Request()
			admin, err := lookup.Lookup(req.Context(), claims.Subject)
			if errors.Is(err, repository.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgAdminNotFound)
			}
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(WithAdmin(req.Context(), admin)))
			c.Set("user_id", admin.ID)
			return next(c)
		}
	}
}
