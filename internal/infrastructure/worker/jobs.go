package worker

import (
	"context"
	"log/slog"
	"time"
)

// NewAssignmentSweepJob は時限割り当ての掃き出しジョブを作成します
// sweepFn は失効・有効化した件数を返す掃き出し処理です
func NewAssignmentSweepJob(sweepFn func(ctx context.Context) (expired, activated int64, err error), interval time.Duration) Job {
	if interval <= 0 {
		interval = time.Minute
	}

	return Job{
		Name:     "assignment_sweep",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			// 件数のログは掃き出し処理側が出す
			_, _, err := sweepFn(ctx)
			return err
		},
	}
}

// NewHealthCheckJob はヘルスチェックジョブを作成します（データベース接続確認など）
func NewHealthCheckJob(checkFn func(ctx context.Context) error) Job {
	return Job{
		Name:     "health_check",
		Interval: 5 * time.Minute,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				return err
			}
			return nil
		},
	}
}
