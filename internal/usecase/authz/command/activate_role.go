package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// ActivateRoleInput はロール割り当て再開の入力を定義します
type ActivateRoleInput struct {
	UserID   uuid.UUID
	RoleCode string
}

// ActivateRoleCommand はpending・suspendedの割り当てをactiveに戻すコマンドです
type ActivateRoleCommand struct {
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewActivateRoleCommand は新しいActivateRoleCommandを作成します
func NewActivateRoleCommand(
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *ActivateRoleCommand {
	return &ActivateRoleCommand{
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute はロール割り当ての再開を実行します
func (c *ActivateRoleCommand) Execute(ctx context.Context, input ActivateRoleInput) error {
	// 1. ロールを取得
	role, err := c.roleRepo.FindByCode(ctx, input.RoleCode)
	if err != nil {
		return err
	}
	if !role.IsAvailable() {
		return apperror.NewConflictError(authz.ErrRoleUnavailable.Error())
	}

	// 2. 割り当てを取得
	assignment, err := c.assignmentRepo.FindByUserAndRole(ctx, input.UserID, role.ID)
	if err != nil {
		return err
	}

	// 3. pending・suspended以外からは遷移しない
	if assignment.Status != authz.AssignmentStatusPending && assignment.Status != authz.AssignmentStatusSuspended {
		return apperror.NewConflictError("assignment is not pending or suspended")
	}

	// 4. 再開して保存
	assignment.Activate()
	if err := c.assignmentRepo.Save(ctx, assignment); err != nil {
		return err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return nil
}
