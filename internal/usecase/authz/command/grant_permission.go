package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// GrantPermissionInput は授権の入力を定義します
// ResourceIDがnilの場合は空間全体への授権となる
// RoleIDが指定された場合はロール由来の授権（role_based）として扱う
type GrantPermissionInput struct {
	UserID         uuid.UUID
	RoleID         *uuid.UUID
	SpaceID        uuid.UUID
	PermissionCode string
	ResourceType   string
	ResourceID     *uuid.UUID
	ParentPath     string
	Level          int
	GrantedBy      uuid.UUID
	ExpiresAt      *time.Time
	Remark         string
}

// GrantPermissionOutput は授権の出力を定義します
type GrantPermissionOutput struct {
	Grant *authz.Grant
}

// GrantPermissionCommand はリソース単位の授権を作成・更新するコマンドです
type GrantPermissionCommand struct {
	permissionRepo authz.PermissionRepository
	grantRepo      authz.GrantRepository
	invalidator    authz.PermissionInvalidator
}

// NewGrantPermissionCommand は新しいGrantPermissionCommandを作成します
func NewGrantPermissionCommand(
	permissionRepo authz.PermissionRepository,
	grantRepo authz.GrantRepository,
	invalidator authz.PermissionInvalidator,
) *GrantPermissionCommand {
	return &GrantPermissionCommand{
		permissionRepo: permissionRepo,
		grantRepo:      grantRepo,
		invalidator:    invalidator,
	}
}

// Execute は授権を実行します
func (c *GrantPermissionCommand) Execute(ctx context.Context, input GrantPermissionInput) (*GrantPermissionOutput, error) {
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
	if !perm.IsUsable() {
		return nil, apperror.NewConflictError("permission is disabled")
	}

	// 3. 権限パスを構築
	path := buildGrantPath(input.SpaceID, input.ParentPath, input.ResourceID)

	// 4. 既存の授権があれば許可状態へ更新する
	existing, err := c.grantRepo.FindByUniqueKey(ctx, input.UserID, input.SpaceID, perm.ID, resourceType, input.ResourceID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		existing.Approve(input.GrantedBy, input.Remark)
		if err := applyGrantOptions(existing, input.Level, input.ExpiresAt); err != nil {
			return nil, err
		}
		if err := c.grantRepo.Save(ctx, existing); err != nil {
			return nil, err
		}

		invalidate(ctx, c.invalidator, input.UserID)
		return &GrantPermissionOutput{Grant: existing}, nil
	}

	// 5. 新規の授権を作成
	grantType := authz.GrantTypeDirect
	if input.RoleID != nil {
		grantType = authz.GrantTypeRoleBased
	}

	grant := authz.NewGrant(input.UserID, input.SpaceID, perm.ID, resourceType, input.ResourceID,
		authz.GrantStatusGranted, grantType, path, &input.GrantedBy)
	grant.RoleID = input.RoleID
	grant.Remark = input.Remark
	if err := applyGrantOptions(grant, input.Level, input.ExpiresAt); err != nil {
		return nil, err
	}

	if err := c.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return &GrantPermissionOutput{Grant: grant}, nil
}

// buildGrantPath は授権対象の権限パスを構築します
func buildGrantPath(spaceID uuid.UUID, parentPath string, resourceID *uuid.UUID) authz.PermissionPath {
	if resourceID == nil {
		return authz.SpacePath(spaceID)
	}
	return authz.BuildPermissionPath(spaceID, parentPath, resourceID)
}

// applyGrantOptions はレベル・有効期限の指定を授権に反映します
// levelが0の場合は既定レベルのまま変更しない
func applyGrantOptions(grant *authz.Grant, level int, expiresAt *time.Time) error {
	if level != 0 {
		if err := grant.SetLevel(level); err != nil {
			return apperror.NewValidationError(err.Error(), nil)
		}
	}
	grant.SetExpiration(expiresAt)
	return nil
}
