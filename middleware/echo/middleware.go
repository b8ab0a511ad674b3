package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/modelcheck"
	"github.com/reoring/modelcheck/middleware"
)

// ValidateJSON validates the request body with c, stores the result in the
// request context, or returns 400 with the issue payload.
func ValidateJSON(c *modelcheck.Compiled) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			out, err := middleware.ValidateBody(ec.Request().Context(), c, ec.Request().Body)
			if err != nil {
				return ec.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithResult(ec.Request().Context(), out)
			ec.SetRequest(ec.Request().WithContext(ctx))
			return next(ec)
		}
	}
}

// GetResult fetches the validated object from echo.Context.
func GetResult(ec echo.Context) (map[string]any, bool) {
	return middleware.ResultFromContext(ec.Request().Context())
}
