package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/utils"
)

// PanicRecoveryMiddleware recovers from handler panics, logs the stack and
// returns a generic 500 instead of dropping the connection.
func PanicRecoveryMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						logger.String("panic", fmt.Sprintf("%v", r)),
						logger.String("path", c.Request().URL.Path),
						logger.String("method", c.Request().Method),
						logger.String("stack", string(debug.Stack())),
					)
					_ = utils.InternalServerErrorResponse(c, "Internal server error")
				}
			}()

			return next(c)
		}
	}
}
