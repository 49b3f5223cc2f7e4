package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// RevokeRoleInput はロール取り消しの入力を定義します
type RevokeRoleInput struct {
	UserID   uuid.UUID
	RoleCode string
	Reason   string
}

// RevokeRoleCommand はロール取り消しコマンドです
// 管理者フロアの確認と取り消しは同一トランザクションで行う
type RevokeRoleCommand struct {
	txManager      authz.TransactionManager
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewRevokeRoleCommand は新しいRevokeRoleCommandを作成します
func NewRevokeRoleCommand(
	txManager authz.TransactionManager,
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *RevokeRoleCommand {
	return &RevokeRoleCommand{
		txManager:      txManager,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute はロール取り消しを実行します
func (c *RevokeRoleCommand) Execute(ctx context.Context, input RevokeRoleInput) error {
	// 1. ロールを取得
	role, err := c.roleRepo.FindByCode(ctx, input.RoleCode)
	if err != nil {
		return err
	}

	// 2. フロア確認と取り消しを同一トランザクションに収める
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		assignment, err := c.assignmentRepo.FindByUserAndRole(ctx, input.UserID, role.ID)
		if err != nil {
			return err
		}

		// 保護ロールは最後の現に有効な割り当てを取り消せない
		// 対象が期限切れ等で既に無効なら、取り消してもフロアは減らない
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

		assignment.Revoke(input.Reason)
		return c.assignmentRepo.Save(ctx, assignment)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return nil
}
