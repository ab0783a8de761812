package httpapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request at debug, or warn for server errors.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Duration("elapsed", time.Since(start)),
			}
			if status >= 500 {
				log.Warn("request failed", append(fields, zap.Error(err))...)
			} else {
				log.Debug("request", fields...)
			}
			return nil
		}
	}
}
