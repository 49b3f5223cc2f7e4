package command

import (
	"context"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// CreateRoleInput はロール作成の入力を定義します
type CreateRoleInput struct {
	Code string
	Name string
	Type string
}

// CreateRoleOutput はロール作成の出力を定義します
type CreateRoleOutput struct {
	Role *authz.Role
}

// CreateRoleCommand はロール作成コマンドです
type CreateRoleCommand struct {
	roleRepo authz.RoleRepository
}

// NewCreateRoleCommand は新しいCreateRoleCommandを作成します
func NewCreateRoleCommand(roleRepo authz.RoleRepository) *CreateRoleCommand {
	return &CreateRoleCommand{roleRepo: roleRepo}
}

// Execute はロール作成を実行します
func (c *CreateRoleCommand) Execute(ctx context.Context, input CreateRoleInput) (*CreateRoleOutput, error) {
	// 1. ロールタイプのバリデーション
	roleType, err := authz.NewRoleType(input.Type)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), nil)
	}
	if input.Code == "" || input.Name == "" {
		return nil, apperror.NewValidationError("code and name are required", nil)
	}

	// 2. 作成して保存（コードの一意性はストアの制約が保証する）
	role := authz.NewRole(input.Code, input.Name, roleType)
	if err := c.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	return &CreateRoleOutput{Role: role}, nil
}
