package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders はJSON APIに適したセキュリティヘッダーを設定する
// ミドルウェアを返します
// 権限判定の結果を中間キャッシュに保持させないためno-storeを付ける
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}
