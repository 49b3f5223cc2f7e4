package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job は定期実行ジョブを定義します
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Manager はバックグラウンドジョブのライフサイクルを管理します
// 掃き出しジョブが止まると時限割り当ての状態が収束しなくなるため、
// ジョブのpanicはワーカーループを殺さずエラーとして記録する
type Manager struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager は新しいManagerを作成します
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register は定期実行ジョブを登録します
// Start後の登録は反映されない
func (m *Manager) Register(job Job) {
	m.jobs = append(m.jobs, job)
}

// Start は登録済みジョブごとにワーカーループを起動します
func (m *Manager) Start() {
	for _, job := range m.jobs {
		m.wg.Add(1)
		go m.loop(job)
	}
	slog.Info("worker manager started", "jobs", len(m.jobs))
}

func (m *Manager) loop(job Job) {
	defer m.wg.Done()

	slog.Info("worker started", "job", job.Name, "interval", job.Interval)

	// 起動直後に1回実行し、以降は一定間隔で繰り返す
	m.runOnce(job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			slog.Info("worker stopping", "job", job.Name)
			return
		case <-ticker.C:
			m.runOnce(job)
		}
	}
}

func (m *Manager) runOnce(job Job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("worker job panicked", "job", job.Name, "error", fmt.Sprint(r))
		}
	}()

	if err := job.Fn(m.ctx); err != nil {
		slog.Error("worker job failed", "job", job.Name, "error", err)
	}
}

// Shutdown は全ワーカーの停止を待ちます
// timeout内に終わらない場合は待機を打ち切る
func (m *Manager) Shutdown(timeout time.Duration) {
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker manager stopped")
	case <-time.After(timeout):
		slog.Warn("worker manager shutdown timed out")
	}
}
