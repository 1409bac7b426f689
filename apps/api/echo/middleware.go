package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/access"
)

// roleMiddleware runs the caller's session through the access gate before
// the handler.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			decision := access.Evaluate(getContextSession(ctx), roles...)
			if decision.State != access.Allow {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
