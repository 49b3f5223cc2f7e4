package command

import (
	"context"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// UpdateRoleInput はロール更新の入力を定義します
// nilのフィールドは変更しない
type UpdateRoleInput struct {
	Code    string
	Name    *string
	Enabled *bool
}

// UpdateRoleCommand はロールの名称・有効状態を変更するコマンドです
// ロールへの変更は割り当てられている全ユーザーの権限計算に影響するため、
// 保存後に影響ユーザーのキャッシュをまとめて無効化する
type UpdateRoleCommand struct {
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewUpdateRoleCommand は新しいUpdateRoleCommandを作成します
func NewUpdateRoleCommand(
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *UpdateRoleCommand {
	return &UpdateRoleCommand{
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute はロール更新を実行します
func (c *UpdateRoleCommand) Execute(ctx context.Context, input UpdateRoleInput) error {
	// 1. ロールを取得
	role, err := c.roleRepo.FindByCode(ctx, input.Code)
	if err != nil {
		return err
	}

	// 2. 名称の変更（システムロールは不可）
	if input.Name != nil {
		if err := role.Rename(*input.Name); err != nil {
			return apperror.NewForbiddenError(err.Error())
		}
	}

	// 3. 有効状態の変更（システムロールの無効化は不可）
	if input.Enabled != nil {
		if err := role.SetEnabled(*input.Enabled); err != nil {
			return apperror.NewForbiddenError(err.Error())
		}
	}

	// 4. 保存
	if err := c.roleRepo.Save(ctx, role); err != nil {
		return err
	}

	// 5. 割り当てられている全ユーザーのキャッシュを無効化
	userIDs, err := c.assignmentRepo.ListActiveUserIDs(ctx, role.ID)
	if err != nil {
		return err
	}
	invalidate(ctx, c.invalidator, userIDs...)

	return nil
}
