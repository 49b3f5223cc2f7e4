package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/logger"
)

// invalidate は変更の影響を受けるユーザーの権限キャッシュを無効化します
// ストアへの書き込みは既に確定しているため、無効化の失敗で
// コマンド自体を失敗させず警告ログに留める
func invalidate(ctx context.Context, invalidator authz.PermissionInvalidator, userIDs ...uuid.UUID) {
	if invalidator == nil {
		return
	}
	for _, userID := range userIDs {
		if err := invalidator.InvalidateUser(ctx, userID); err != nil {
			logger.Warn(ctx, "permission cache invalidation failed", "user_id", userID, "error", err)
		}
	}
}
