package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// CheckPermissionInput はロール由来の権限確認の入力を定義します
type CheckPermissionInput struct {
	UserID         uuid.UUID
	PermissionCode string
}

// CheckPermissionOutput は権限確認の出力を定義します
type CheckPermissionOutput struct {
	Allowed bool
}

// CheckPermissionQuery はリソース文脈を持たない権限確認クエリです
type CheckPermissionQuery struct {
	permissionResolver authz.PermissionResolver
}

// NewCheckPermissionQuery は新しいCheckPermissionQueryを作成します
func NewCheckPermissionQuery(permissionResolver authz.PermissionResolver) *CheckPermissionQuery {
	return &CheckPermissionQuery{permissionResolver: permissionResolver}
}

// Execute は権限確認を実行します
// 該当する権限がない場合はエラーではなくAllowed=falseを返す
func (q *CheckPermissionQuery) Execute(ctx context.Context, input CheckPermissionInput) (*CheckPermissionOutput, error) {
	allowed, err := q.permissionResolver.HasPermission(ctx, input.UserID, input.PermissionCode)
	if err != nil {
		return nil, err
	}
	return &CheckPermissionOutput{Allowed: allowed}, nil
}
