package command

import (
	"context"
	"time"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/logger"
)

// SweepExpiredOutput は掃き出し処理の結果を定義します
type SweepExpiredOutput struct {
	Expired   int64
	Activated int64
}

// SweepExpiredCommand は時限割り当てのステータスを収束させるコマンドです
// 期限切れのactiveをexpiredへ、有効開始済みのpendingをactiveへ遷移する
// 遷移は比較付き一括更新のため、複数インスタンスでの並行実行にも安全
type SweepExpiredCommand struct {
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewSweepExpiredCommand は新しいSweepExpiredCommandを作成します
func NewSweepExpiredCommand(
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *SweepExpiredCommand {
	return &SweepExpiredCommand{
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute は掃き出し処理を実行します
func (c *SweepExpiredCommand) Execute(ctx context.Context) (*SweepExpiredOutput, error) {
	now := time.Now()

	// 1. 期限切れの割り当てをexpiredへ遷移
	expired, expiredUsers, err := c.assignmentRepo.ExpireDue(ctx, now)
	if err != nil {
		return nil, err
	}

	// 2. 有効開始済みのpending割り当てをactiveへ遷移
	activated, activatedUsers, err := c.assignmentRepo.ActivateDue(ctx, now)
	if err != nil {
		return nil, err
	}

	// 3. 影響を受けたユーザーのキャッシュを無効化
	invalidate(ctx, c.invalidator, expiredUsers...)
	invalidate(ctx, c.invalidator, activatedUsers...)

	if expired > 0 || activated > 0 {
		logger.Info(ctx, "assignment sweep completed", "expired", expired, "activated", activated)
	}

	return &SweepExpiredOutput{Expired: expired, Activated: activated}, nil
}
