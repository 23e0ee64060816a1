package middleware

import (
	"strconv"
	"time"

	"bookstore/internal/observability"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// アクセスログとHTTPメトリクス
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)
			status := strconv.Itoa(res.Status)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			observability.HTTPRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
			observability.HTTPRequestDuration.WithLabelValues(req.Method, path, status).Observe(elapsed.Seconds())

			fields := []zap.Field{
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", elapsed),
			}
			if id, ok := UserID(c); ok {
				fields = append(fields, zap.Int64("user_id", id))
			}

			switch {
			case res.Status >= 500:
				logger.Error("request", fields...)
			case res.Status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		}
	}
}
