package authz

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AssignmentRepository はロール割り当てリポジトリのインターフェース
// (user_id, role_id) の一意性はストア側の制約で保証される
// アプリケーション側の重複チェックは最適化であり正しさの根拠ではない
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *RoleAssignment) error
	Save(ctx context.Context, assignment *RoleAssignment) error
	FindByUserAndRole(ctx context.Context, userID, roleID uuid.UUID) (*RoleAssignment, error)

	// FindValid は有効な割り当てを割り当て日時の昇順で返します
	// 順序は有効権限計算の先着優先タイブレークを固定するために必要
	FindValid(ctx context.Context, userID uuid.UUID, now time.Time) ([]*RoleAssignment, error)

	// CountValidByRole はロールの現に有効な割り当て数を返します
	// FindValidと同じ有効判定を使う。掃き出し前の期限切れactive行を
	// 数えると、最後の有効な管理者の取り消しを許してしまう
	CountValidByRole(ctx context.Context, roleID uuid.UUID, now time.Time) (int64, error)

	// ListActiveUserIDs はロールが有効に割り当てられているユーザーIDを返します
	// ロール自体の変更時に影響ユーザーのキャッシュを無効化するために使う
	ListActiveUserIDs(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error)

	// ExpireDue は期限切れのactive割り当てをexpiredへ一括遷移し、件数を返します
	// 遷移はstatusの比較付き更新であり、並行実行・再実行に対して冪等
	ExpireDue(ctx context.Context, now time.Time) (int64, []uuid.UUID, error)

	// ActivateDue は有効開始済みのpending割り当てをactiveへ一括遷移し、件数を返します
	ActivateDue(ctx context.Context, now time.Time) (int64, []uuid.UUID, error)
}
