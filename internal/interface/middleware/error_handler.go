package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/database"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はアプリケーション全体のエラーをレスポンスに変換します
// 変換順序:
//  1. AppError — ユースケースが明示した失敗。コードとステータスをそのまま使う
//  2. ストア接続断 — 権限判定はfail-closedのため503で拒否させる
//  3. echo.HTTPError — ルーティング起因(404/405など)
//  4. それ以外 — 詳細を漏らさず500
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= 500 {
			logError(c, "internal error", appErr)
		}
		writeError(c, appErr.HTTPStatus, ErrorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	if errors.Is(err, database.ErrUnavailable) {
		logError(c, "durable store unavailable", err)
		writeError(c, http.StatusServiceUnavailable, ErrorBody{
			Code:    string(apperror.CodeServiceUnavailable),
			Message: "durable store unavailable",
		})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		writeError(c, httpErr.Code, ErrorBody{
			Code:    http.StatusText(httpErr.Code),
			Message: fmt.Sprintf("%v", httpErr.Message),
		})
		return
	}

	logError(c, "unhandled error", err)
	writeError(c, http.StatusInternalServerError, ErrorBody{
		Code:    string(apperror.CodeInternalError),
		Message: "internal server error",
	})
}

func writeError(c echo.Context, status int, body ErrorBody) {
	_ = c.JSON(status, ErrorResponse{Error: body})
}

func logError(c echo.Context, msg string, err error) {
	slog.Error(msg,
		"request_id", GetRequestID(c),
		"method", c.Request().Method,
		"uri", c.Request().RequestURI,
		"error", err.Error(),
	)
}
