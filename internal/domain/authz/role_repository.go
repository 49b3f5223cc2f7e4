package authz

import (
	"context"

	"github.com/google/uuid"
)

// RoleRepository はロールリポジトリのインターフェース
// 読み出しは常に未削除レコードのみを対象とする
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	Save(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByCode(ctx context.Context, code string) (*Role, error)
	ListEnabled(ctx context.Context) ([]*Role, error)
}
