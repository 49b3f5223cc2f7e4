package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// probeTimeout は依存先1つあたりの確認タイムアウトです
const probeTimeout = 2 * time.Second

// HealthChecker は依存先の疎通確認を実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	names    []string
	checkers map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
	}
}

// RegisterChecker は依存先のチェッカーを登録します
// レスポンスの並びを安定させるため登録順を保持する
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if _, ok := h.checkers[name]; !ok {
		h.names = append(h.names, name)
	}
	h.checkers[name] = checker
}

// HealthResponse はライブネスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus は依存先の疎通状態を定義します
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready はレディネスチェックを実行します
// 権限判定はストアとキャッシュの両方に依存するため、いずれかが
// 落ちている間はトラフィックを受けない
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	deps := make(map[string]DependencyStatus, len(h.names))
	ready := true

	for _, name := range h.names {
		probeCtx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
		err := h.checkers[name].Health(probeCtx)
		cancel()

		if err != nil {
			deps[name] = DependencyStatus{Status: "unhealthy", Message: err.Error()}
			ready = false
			continue
		}
		deps[name] = DependencyStatus{Status: "healthy"}
	}

	if !ready {
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{
			Status:       "not_ready",
			Dependencies: deps,
		})
	}

	return c.JSON(http.StatusOK, ReadyResponse{
		Status:       "ready",
		Dependencies: deps,
	})
}
