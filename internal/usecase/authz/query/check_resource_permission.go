package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// CheckResourcePermissionInput はリソース単位の権限確認の入力を定義します
// ResourceIDがnilの場合は空間そのものに対する確認となる
type CheckResourcePermissionInput struct {
	UserID         uuid.UUID
	SpaceID        uuid.UUID
	ResourceType   string
	ResourceID     *uuid.UUID
	PermissionCode string
}

// CheckResourcePermissionOutput はリソース単位の権限確認の出力を定義します
type CheckResourcePermissionOutput struct {
	Allowed bool
}

// CheckResourcePermissionQuery はリソース文脈を考慮した権限確認クエリです
type CheckResourcePermissionQuery struct {
	permissionResolver authz.PermissionResolver
}

// NewCheckResourcePermissionQuery は新しいCheckResourcePermissionQueryを作成します
func NewCheckResourcePermissionQuery(permissionResolver authz.PermissionResolver) *CheckResourcePermissionQuery {
	return &CheckResourcePermissionQuery{permissionResolver: permissionResolver}
}

// Execute はリソース単位の権限確認を実行します
func (q *CheckResourcePermissionQuery) Execute(ctx context.Context, input CheckResourcePermissionInput) (*CheckResourcePermissionOutput, error) {
	// 1. リソースタイプのバリデーション
	resourceType, err := authz.NewResourceType(input.ResourceType)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}

	// 2. 権限を確認
	allowed, err := q.permissionResolver.HasResourcePermission(ctx, input.UserID, input.SpaceID, resourceType, input.ResourceID, input.PermissionCode)
	if err != nil {
		return nil, err
	}
	return &CheckResourcePermissionOutput{Allowed: allowed}, nil
}
