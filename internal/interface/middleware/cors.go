package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS はCORSミドルウェアを返します
// 権限判定APIは管理コンソールからもブラウザ経由で叩かれるため、
// プリフライトに応答できる必要がある
func CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", HeaderRequestID},
		MaxAge:       3600,
	})
}
