package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// EffectivePermissionsInput は有効権限一覧の入力を定義します
type EffectivePermissionsInput struct {
	UserID uuid.UUID
}

// EffectivePermissionsOutput は有効権限一覧の出力を定義します
type EffectivePermissionsOutput struct {
	Permissions []*authz.Permission
}

// EffectivePermissionsQuery はユーザーの有効権限一覧を取得するクエリです
// 結果は(リソースタイプ, カテゴリ)ごとの勝者のみで構成される
type EffectivePermissionsQuery struct {
	permissionResolver authz.PermissionResolver
}

// NewEffectivePermissionsQuery は新しいEffectivePermissionsQueryを作成します
func NewEffectivePermissionsQuery(permissionResolver authz.PermissionResolver) *EffectivePermissionsQuery {
	return &EffectivePermissionsQuery{permissionResolver: permissionResolver}
}

// Execute は有効権限一覧の取得を実行します
func (q *EffectivePermissionsQuery) Execute(ctx context.Context, input EffectivePermissionsInput) (*EffectivePermissionsOutput, error) {
	set, err := q.permissionResolver.EffectivePermissions(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &EffectivePermissionsOutput{Permissions: set.List()}, nil
}
