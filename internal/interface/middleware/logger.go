package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// Logger はリクエストロギングミドルウェアを返します
// 権限判定APIは呼び出し頻度が高いため、1リクエスト1行の要約のみ出す
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			attrs := []any{
				"request_id", GetRequestID(c),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
			}
			slog.Info("request", attrs...)

			return err
		}
	}
}
