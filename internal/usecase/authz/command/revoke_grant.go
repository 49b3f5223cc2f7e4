package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// RevokeGrantInput は授権取り消しの入力を定義します
type RevokeGrantInput struct {
	GrantID uuid.UUID
	Remark  string
}

// RevokeGrantCommand は授権を論理削除するコマンドです
type RevokeGrantCommand struct {
	grantRepo   authz.GrantRepository
	invalidator authz.PermissionInvalidator
}

// NewRevokeGrantCommand は新しいRevokeGrantCommandを作成します
func NewRevokeGrantCommand(
	grantRepo authz.GrantRepository,
	invalidator authz.PermissionInvalidator,
) *RevokeGrantCommand {
	return &RevokeGrantCommand{
		grantRepo:   grantRepo,
		invalidator: invalidator,
	}
}

// Execute は授権取り消しを実行します
func (c *RevokeGrantCommand) Execute(ctx context.Context, input RevokeGrantInput) error {
	// 1. 授権を取得
	grant, err := c.grantRepo.FindByID(ctx, input.GrantID)
	if err != nil {
		return err
	}

	// 2. 論理削除して保存
	grant.Revoke(input.Remark)
	if err := c.grantRepo.Save(ctx, grant); err != nil {
		return err
	}

	invalidate(ctx, c.invalidator, grant.UserID)
	return nil
}
