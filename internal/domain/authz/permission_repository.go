package authz

import (
	"context"

	"github.com/google/uuid"
)

// PermissionRepository は権限定義リポジトリのインターフェース
type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	Save(ctx context.Context, permission *Permission) error
	FindByID(ctx context.Context, id uuid.UUID) (*Permission, error)
	FindByCode(ctx context.Context, code string) (*Permission, error)
	ListByRoleID(ctx context.Context, roleID uuid.UUID) ([]*Permission, error)
}
