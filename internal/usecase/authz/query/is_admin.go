package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// IsAdminInput は管理者判定の入力を定義します
type IsAdminInput struct {
	UserID uuid.UUID
}

// IsAdminOutput は管理者判定の出力を定義します
type IsAdminOutput struct {
	IsAdmin bool
}

// IsAdminQuery はユーザーが管理者系ロールを保持しているかを判定するクエリです
type IsAdminQuery struct {
	permissionResolver authz.PermissionResolver
}

// NewIsAdminQuery は新しいIsAdminQueryを作成します
func NewIsAdminQuery(permissionResolver authz.PermissionResolver) *IsAdminQuery {
	return &IsAdminQuery{permissionResolver: permissionResolver}
}

// Execute は管理者判定を実行します
func (q *IsAdminQuery) Execute(ctx context.Context, input IsAdminInput) (*IsAdminOutput, error) {
	isAdmin, err := q.permissionResolver.IsAdmin(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &IsAdminOutput{IsAdmin: isAdmin}, nil
}
