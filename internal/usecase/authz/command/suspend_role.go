package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// SuspendRoleInput はロール割り当て停止の入力を定義します
type SuspendRoleInput struct {
	UserID   uuid.UUID
	RoleCode string
	Reason   string
}

// SuspendRoleCommand はロール割り当てを一時停止するコマンドです
// 管理者フロアの確認と停止は同一トランザクションで行う
type SuspendRoleCommand struct {
	txManager      authz.TransactionManager
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewSuspendRoleCommand は新しいSuspendRoleCommandを作成します
func NewSuspendRoleCommand(
	txManager authz.TransactionManager,
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *SuspendRoleCommand {
	return &SuspendRoleCommand{
		txManager:      txManager,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute はロール割り当ての一時停止を実行します
func (c *SuspendRoleCommand) Execute(ctx context.Context, input SuspendRoleInput) error {
	// 1. ロールを取得
	role, err := c.roleRepo.FindByCode(ctx, input.RoleCode)
	if err != nil {
		return err
	}

	// 2. フロア確認と停止を同一トランザクションに収める
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		assignment, err := c.assignmentRepo.FindByUserAndRole(ctx, input.UserID, role.ID)
		if err != nil {
			return err
		}

		// 停止できるのはactiveな割り当てのみ
		if !assignment.IsActive() {
			return apperror.NewConflictError("assignment is not active")
		}

		// 保護ロールの最後の現に有効な割り当ては停止でも失えない
		now := time.Now()
		if role.IsProtected() && assignment.IsValid(now) {
			count, err := c.assignmentRepo.CountValidByRole(ctx, role.ID, now)
			if err != nil {
				return err
			}
			if count <= 1 {
				return apperror.NewForbiddenError(authz.ErrLastAdminProtected.Error())
			}
		}

		assignment.Suspend(input.Reason)
		return c.assignmentRepo.Save(ctx, assignment)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return nil
}
