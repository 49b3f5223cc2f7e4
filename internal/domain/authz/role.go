package authz

import (
	"github.com/google/uuid"
)

// システムロールの既定コード
const (
	RoleCodeSuperAdmin = "SUPER_ADMIN"
	RoleCodeAdmin      = "ADMIN"
	RoleCodeUser       = "USER"
	RoleCodeGuest      = "GUEST"
)

// Role はロールを表すエンティティ
// System=trueのロールは改名・無効化・削除できない
type Role struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Type        RoleType
	Permissions []*Permission
	Enabled     bool
	System      bool
	Audit       Audit
}

// NewRole は新しいRoleを生成します
func NewRole(code, name string, roleType RoleType) *Role {
	return &Role{
		ID:      uuid.New(),
		Code:    code,
		Name:    name,
		Type:    roleType,
		Enabled: true,
		System:  false,
		Audit:   NewAudit(),
	}
}

// NewSystemRole は新しいシステムロールを生成します
func NewSystemRole(code, name string, roleType RoleType) *Role {
	role := NewRole(code, name, roleType)
	role.System = true
	return role
}

// ReconstructRole はDBから復元するためのコンストラクタ
func ReconstructRole(
	id uuid.UUID,
	code, name string,
	roleType RoleType,
	permissions []*Permission,
	enabled, system bool,
	audit Audit,
) *Role {
	return &Role{
		ID:          id,
		Code:        code,
		Name:        name,
		Type:        roleType,
		Permissions: permissions,
		Enabled:     enabled,
		System:      system,
		Audit:       audit,
	}
}

// IsAvailable は割り当て可能なロールかを判定します
func (r *Role) IsAvailable() bool {
	return r.Enabled && !r.Audit.IsDeleted()
}

// IsAdminRole は管理者系ロールかを判定します
func (r *Role) IsAdminRole() bool {
	return r.Type.IsAdminType()
}

// IsProtected は最低1名の有効な割り当て保持が必要なロールかを判定します
func (r *Role) IsProtected() bool {
	return r.System && r.IsAdminRole()
}

// CanModify は改名・無効化・削除が可能かを判定します
func (r *Role) CanModify() bool {
	return !r.System
}

// Rename はロール名を変更します
func (r *Role) Rename(name string) error {
	if !r.CanModify() {
		return ErrSystemRoleProtected
	}
	r.Name = name
	r.Audit.Touch()
	return nil
}

// SetEnabled は有効状態を変更します
func (r *Role) SetEnabled(enabled bool) error {
	if !enabled && !r.CanModify() {
		return ErrSystemRoleProtected
	}
	r.Enabled = enabled
	r.Audit.Touch()
	return nil
}

// Delete は論理削除します
func (r *Role) Delete() error {
	if !r.CanModify() {
		return ErrSystemRoleProtected
	}
	r.Audit.MarkDeleted()
	return nil
}

// UsablePermissions は有効な権限のみを返します
func (r *Role) UsablePermissions() []*Permission {
	perms := make([]*Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p.IsUsable() {
			perms = append(perms, p)
		}
	}
	return perms
}

// HasPermissionCode は指定された権限コードを持つかを判定します
func (r *Role) HasPermissionCode(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code && p.IsUsable() {
			return true
		}
	}
	return false
}
