package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// DenyPermissionInput は明示的拒否の入力を定義します
type DenyPermissionInput struct {
	UserID         uuid.UUID
	SpaceID        uuid.UUID
	PermissionCode string
	ResourceType   string
	ResourceID     *uuid.UUID
	ParentPath     string
	DeniedBy       uuid.UUID
	Remark         string
}

// DenyPermissionOutput は明示的拒否の出力を定義します
type DenyPermissionOutput struct {
	Grant *authz.Grant
}

// DenyPermissionCommand はリソース単位の明示的拒否を記録するコマンドです
// 拒否レコードは競合解決で同深度のあらゆる許可に優先する
type DenyPermissionCommand struct {
	permissionRepo authz.PermissionRepository
	grantRepo      authz.GrantRepository
	invalidator    authz.PermissionInvalidator
}

// NewDenyPermissionCommand は新しいDenyPermissionCommandを作成します
func NewDenyPermissionCommand(
	permissionRepo authz.PermissionRepository,
	grantRepo authz.GrantRepository,
	invalidator authz.PermissionInvalidator,
) *DenyPermissionCommand {
	return &DenyPermissionCommand{
		permissionRepo: permissionRepo,
		grantRepo:      grantRepo,
		invalidator:    invalidator,
	}
}

// Execute は明示的拒否を実行します
func (c *DenyPermissionCommand) Execute(ctx context.Context, input DenyPermissionInput) (*DenyPermissionOutput, error) {
	// 1. リソースタイプのバリデーション
	resourceType, err := authz.NewResourceType(input.ResourceType)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}
	if input.ResourceID == nil && resourceType != authz.ResourceTypeSpace {
		return nil, apperror.NewValidationError("resource id is required for non-space grants", nil)
	}

	// 2. 権限定義を取得
	perm, err := c.permissionRepo.FindByCode(ctx, input.PermissionCode)
	if err != nil {
		return nil, err
	}

	// 3. 既存の授権があれば拒否状態へ遷移する
	existing, err := c.grantRepo.FindByUniqueKey(ctx, input.UserID, input.SpaceID, perm.ID, resourceType, input.ResourceID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		existing.Deny(input.DeniedBy, input.Remark)
		if err := c.grantRepo.Save(ctx, existing); err != nil {
			return nil, err
		}

		invalidate(ctx, c.invalidator, input.UserID)
		return &DenyPermissionOutput{Grant: existing}, nil
	}

	// 4. 拒否レコードを新規作成
	path := buildGrantPath(input.SpaceID, input.ParentPath, input.ResourceID)
	grant := authz.NewGrant(input.UserID, input.SpaceID, perm.ID, resourceType, input.ResourceID,
		authz.GrantStatusDenied, authz.GrantTypeDirect, path, &input.DeniedBy)
	grant.Remark = input.Remark

	if err := c.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return &DenyPermissionOutput{Grant: grant}, nil
}
