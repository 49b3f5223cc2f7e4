package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// Recover はハンドラー内のパニックを500エラーに変換するミドルウェアを返します
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered",
						"request_id", GetRequestID(c),
						"error", fmt.Sprint(r),
						"stack", string(debug.Stack()),
					)

					c.Error(apperror.NewInternalError(fmt.Errorf("panic: %v", r)))
				}
			}()

			return next(c)
		}
	}
}
