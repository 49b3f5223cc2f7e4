package command

import (
	"context"
	"time"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// DeleteRoleInput はロール削除の入力を定義します
type DeleteRoleInput struct {
	Code string
}

// DeleteRoleCommand はロールを論理削除するコマンドです
// 有効な割り当てが残っている間は削除できないため、キャッシュ無効化は不要
// 割り当て確認と削除は同一トランザクションで行う
type DeleteRoleCommand struct {
	txManager      authz.TransactionManager
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
}

// NewDeleteRoleCommand は新しいDeleteRoleCommandを作成します
func NewDeleteRoleCommand(
	txManager authz.TransactionManager,
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
) *DeleteRoleCommand {
	return &DeleteRoleCommand{
		txManager:      txManager,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Execute はロール削除を実行します
func (c *DeleteRoleCommand) Execute(ctx context.Context, input DeleteRoleInput) error {
	return c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		role, err := c.roleRepo.FindByCode(ctx, input.Code)
		if err != nil {
			return err
		}

		// 現に有効な割り当てが残っているロールは削除不可
		count, err := c.assignmentRepo.CountValidByRole(ctx, role.ID, time.Now())
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.NewConflictError("role still has active assignments")
		}

		// 論理削除（システムロールは不可）
		if err := role.Delete(); err != nil {
			return apperror.NewForbiddenError(err.Error())
		}
		return c.roleRepo.Save(ctx, role)
	})
}
