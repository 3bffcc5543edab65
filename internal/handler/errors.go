package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/order"
	"github.com/trialvo/trialvo-backend/internal/patch"
	"github.com/trialvo/trialvo-backend/internal/repository"
)

const msgInternal = "internal server error"

// ErrorHandler renders every error as {"error": message}.  *echo.HTTPError
// keeps its code, known sentinels map to 4xx and anything else is a 500
// that is logged.  In production the 500 message is generic.
func ErrorHandler(log *zap.Logger, production bool) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := classify(err)
		if code >= http.StatusInternalServerError {
			req := c.Request()
			log.Error("request failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			if production {
				msg = msgInternal
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, echo.Map{"error": msg})
		}
		if werr != nil {
			log.Warn("write error response", zap.Error(werr))
		}
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil && he.Code >= http.StatusInternalServerError {
			return he.Code, he.Internal.Error()
		}
		if s, ok := he.Message.(string); ok {
			return he.Code, s
		}
		return he.Code, fmt.Sprint(he.Message)
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, validationMessage(verrs)
	case errors.Is(err, patch.ErrNoFields):
		return http.StatusBadRequest, patch.ErrNoFields.Error()
	case errors.Is(err, order.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "already exists"
	}
	return http.StatusInternalServerError, err.Error()
}

// storeErr names the resource in not-found and conflict errors.  Other
// errors pass through to ErrorHandler.
func storeErr(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	case errors.Is(err, repository.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, what+" already exists")
	}
	return err
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// bindAndValidate decodes the body into dst and runs the registered
// validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return badRequest("invalid request body")
	}
	return c.Validate(dst)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
