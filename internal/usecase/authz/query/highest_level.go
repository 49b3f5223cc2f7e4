package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// HighestLevelInput は最高権限レベル取得の入力を定義します
type HighestLevelInput struct {
	UserID       uuid.UUID
	ResourceType string
}

// HighestLevelOutput は最高権限レベル取得の出力を定義します
// 該当する権限がない場合のLevelは0
type HighestLevelOutput struct {
	Level int
}

// HighestLevelQuery は指定リソースタイプでの最高権限レベルを取得するクエリです
type HighestLevelQuery struct {
	permissionResolver authz.PermissionResolver
}

// NewHighestLevelQuery は新しいHighestLevelQueryを作成します
func NewHighestLevelQuery(permissionResolver authz.PermissionResolver) *HighestLevelQuery {
	return &HighestLevelQuery{permissionResolver: permissionResolver}
}

// Execute は最高権限レベルの取得を実行します
func (q *HighestLevelQuery) Execute(ctx context.Context, input HighestLevelInput) (*HighestLevelOutput, error) {
	resourceType, err := authz.NewResourceType(input.ResourceType)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}

	level, err := q.permissionResolver.HighestLevel(ctx, input.UserID, resourceType)
	if err != nil {
		return nil, err
	}
	return &HighestLevelOutput{Level: level}, nil
}
