package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// AssignRoleInput はロール割り当ての入力を定義します
type AssignRoleInput struct {
	UserID     uuid.UUID
	RoleCode   string
	AssignedBy uuid.UUID
	Reason     string
	ExpiresAt  *time.Time
}

// AssignRoleOutput はロール割り当ての出力を定義します
type AssignRoleOutput struct {
	Assignment *authz.RoleAssignment
}

// AssignRoleCommand はロール割り当てコマンドです
type AssignRoleCommand struct {
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewAssignRoleCommand は新しいAssignRoleCommandを作成します
func NewAssignRoleCommand(
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *AssignRoleCommand {
	return &AssignRoleCommand{
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute はロール割り当てを実行します
func (c *AssignRoleCommand) Execute(ctx context.Context, input AssignRoleInput) (*AssignRoleOutput, error) {
	// 1. ロールを取得
	role, err := c.roleRepo.FindByCode(ctx, input.RoleCode)
	if err != nil {
		return nil, err
	}

	// 2. 無効化・削除済みロールは割り当て不可
	if !role.IsAvailable() {
		return nil, apperror.NewConflictError(authz.ErrRoleUnavailable.Error())
	}

	// 3. 既存の割り当てを確認
	existing, err := c.assignmentRepo.FindByUserAndRole(ctx, input.UserID, role.ID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		// 3.5. 有効な割り当てが既にあれば競合
		if existing.IsValid(now) {
			return nil, apperror.NewConflictError(authz.ErrAlreadyAssigned.Error())
		}

		// 4. 失効・停止・取り消し済みの割り当ては再有効化する
		existing.Reactivate(input.AssignedBy, input.Reason, input.ExpiresAt)
		if err := c.assignmentRepo.Save(ctx, existing); err != nil {
			return nil, err
		}

		invalidate(ctx, c.invalidator, input.UserID)
		return &AssignRoleOutput{Assignment: existing}, nil
	}

	// 5. 新規割り当てを作成
	// 同時実行時の重複はストアの一意制約が防ぐ（ここまでのチェックは最適化）
	assignment := authz.NewRoleAssignment(input.UserID, role.ID, input.AssignedBy, input.Reason, input.ExpiresAt)
	if err := c.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return &AssignRoleOutput{Assignment: assignment}, nil
}
