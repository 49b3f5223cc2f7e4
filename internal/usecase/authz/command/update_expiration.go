package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// UpdateExpirationInput は割り当て有効期限変更の入力を定義します
// ExpiresAtがnilの場合は無期限にする
type UpdateExpirationInput struct {
	UserID    uuid.UUID
	RoleCode  string
	ExpiresAt *time.Time
}

// UpdateExpirationCommand はロール割り当ての有効期限を変更するコマンドです
type UpdateExpirationCommand struct {
	roleRepo       authz.RoleRepository
	assignmentRepo authz.AssignmentRepository
	invalidator    authz.PermissionInvalidator
}

// NewUpdateExpirationCommand は新しいUpdateExpirationCommandを作成します
func NewUpdateExpirationCommand(
	roleRepo authz.RoleRepository,
	assignmentRepo authz.AssignmentRepository,
	invalidator authz.PermissionInvalidator,
) *UpdateExpirationCommand {
	return &UpdateExpirationCommand{
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// Execute は有効期限の変更を実行します
func (c *UpdateExpirationCommand) Execute(ctx context.Context, input UpdateExpirationInput) error {
	// 1. 過去の日時は設定不可
	if input.ExpiresAt != nil && input.ExpiresAt.Before(time.Now()) {
		return apperror.NewValidationError("expiration must be in the future", nil)
	}

	// 2. ロールを取得
	role, err := c.roleRepo.FindByCode(ctx, input.RoleCode)
	if err != nil {
		return err
	}

	// 3. 割り当てを取得
	assignment, err := c.assignmentRepo.FindByUserAndRole(ctx, input.UserID, role.ID)
	if err != nil {
		return err
	}

	// 4. 期限を更新して保存
	assignment.UpdateExpiration(input.ExpiresAt)
	if err := c.assignmentRepo.Save(ctx, assignment); err != nil {
		return err
	}

	invalidate(ctx, c.invalidator, input.UserID)
	return nil
}
