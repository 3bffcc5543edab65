package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/middleware"
	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/repository"
	"github.com/trialvo/trialvo-backend/internal/utils"
)

// dbTimeout bounds every store call made on behalf of a request.
const dbTimeout = 5 * time.Second

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

const msgBadCredentials = "invalid email or password"

// AuthHandler serves login and the signed-in admin's own account.
type AuthHandler struct {
	Admins     AdminStore
	Tokens     TokenIssuer
	BcryptCost int
}

func NewAuthHandler(admins AdminStore, tokens TokenIssuer, bcryptCost int) *AuthHandler {
	return &AuthHandler{Admins: admins, Tokens: tokens, BcryptCost: bcryptCost}
}

type loginResp struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Admin     model.Admin `json:"admin"`
}

// Login exchanges email and password for a bearer token.  Unknown email
// and wrong password get the same answer.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, msgBadCredentials)
	}
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, msgBadCredentials)
	}

	tok, err := h.Tokens.Issue(a.ID, a.Email, a.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResp{Token: tok.Token, ExpiresAt: tok.Exp, Admin: a.Principal()})
}

// Me returns the authenticated admin.
func (h *AuthHandler) Me(c echo.Context) error {
	a, ok := middleware.AdminFrom(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgNoToken)
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": a})
}

// UpdateProfile changes the admin's display name.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	a, ok := middleware.AdminFrom(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgNoToken)
	}
	var req model.ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Admins.Update(ctx, a.ID, model.AdminProfilePatch{FullName: req.FullName}); err != nil {
		return storeErr(err, "admin")
	}
	p, err := h.Admins.GetByID(ctx, a.ID)
	if err != nil {
		return storeErr(err, "admin")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated successfully", "admin": p.Principal()})
}

// ChangePassword replaces the admin's password.  Existing tokens stay
// valid until they expire.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	a, ok := middleware.AdminFrom(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgNoToken)
	}
	var req model.PasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return badRequest(err.Error())
	}

	hash, err := utils.HashPassword(req.NewPassword, h.BcryptCost)
	if err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Admins.Update(ctx, a.ID, model.AdminProfilePatch{PasswordHash: &hash}); err != nil {
		return storeErr(err, "admin")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed successfully"})
}
