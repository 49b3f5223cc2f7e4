package authz

// ResourceType はリソースの種類を表す型
type ResourceType string

const (
	ResourceTypeFile   ResourceType = "file"
	ResourceTypeFolder ResourceType = "folder"
	ResourceTypeSpace  ResourceType = "space"
)

// NewResourceType は文字列からResourceTypeを生成します
func NewResourceType(t string) (ResourceType, error) {
	rt := ResourceType(t)
	if !rt.IsValid() {
		return "", ErrInvalidResourceType
	}
	return rt, nil
}

// IsValid はリソースタイプが有効かを判定します
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceTypeFile, ResourceTypeFolder, ResourceTypeSpace:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (t ResourceType) String() string {
	return string(t)
}

// IsSpace は空間全体を指すタイプかを判定します
func (t ResourceType) IsSpace() bool {
	return t == ResourceTypeSpace
}

// GrantStatus は授権状態を表す型
type GrantStatus string

const (
	GrantStatusGranted   GrantStatus = "granted"
	GrantStatusDenied    GrantStatus = "denied"
	GrantStatusInherited GrantStatus = "inherited"
)

// NewGrantStatus は文字列からGrantStatusを生成します
func NewGrantStatus(s string) (GrantStatus, error) {
	gs := GrantStatus(s)
	if !gs.IsValid() {
		return "", ErrInvalidGrantStatus
	}
	return gs, nil
}

// IsValid は授権状態が有効かを判定します
func (s GrantStatus) IsValid() bool {
	switch s {
	case GrantStatusGranted, GrantStatusDenied, GrantStatusInherited:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (s GrantStatus) String() string {
	return string(s)
}

// GrantType は授権の由来を表す型
type GrantType string

const (
	GrantTypeDirect    GrantType = "direct"
	GrantTypeInherited GrantType = "inherited"
	GrantTypeRoleBased GrantType = "role_based"
)

// NewGrantType は文字列からGrantTypeを生成します
func NewGrantType(t string) (GrantType, error) {
	gt := GrantType(t)
	if !gt.IsValid() {
		return "", ErrInvalidGrantType
	}
	return gt, nil
}

// IsValid は授権タイプが有効かを判定します
func (t GrantType) IsValid() bool {
	switch t {
	case GrantTypeDirect, GrantTypeInherited, GrantTypeRoleBased:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (t GrantType) String() string {
	return string(t)
}

// Specificity は競合解決で使う授権タイプの優先度を返します
// direct > role_based > inherited
func (t GrantType) Specificity() int {
	switch t {
	case GrantTypeDirect:
		return 3
	case GrantTypeRoleBased:
		return 2
	case GrantTypeInherited:
		return 1
	default:
		return 0
	}
}

// AssignmentStatus はロール割り当ての状態を表す型
type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusSuspended AssignmentStatus = "suspended"
	AssignmentStatusExpired   AssignmentStatus = "expired"
	AssignmentStatusRevoked   AssignmentStatus = "revoked"
)

// NewAssignmentStatus は文字列からAssignmentStatusを生成します
func NewAssignmentStatus(s string) (AssignmentStatus, error) {
	as := AssignmentStatus(s)
	if !as.IsValid() {
		return "", ErrInvalidAssignmentStatus
	}
	return as, nil
}

// IsValid は割り当て状態が有効かを判定します
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusActive, AssignmentStatusPending, AssignmentStatusSuspended,
		AssignmentStatusExpired, AssignmentStatusRevoked:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (s AssignmentStatus) String() string {
	return string(s)
}

// RoleType はロールの種類を表す型
type RoleType string

const (
	RoleTypeSuperAdmin RoleType = "super_admin"
	RoleTypeAdmin      RoleType = "admin"
	RoleTypeUser       RoleType = "user"
	RoleTypeGuest      RoleType = "guest"
)

// NewRoleType は文字列からRoleTypeを生成します
func NewRoleType(t string) (RoleType, error) {
	rt := RoleType(t)
	if !rt.IsValid() {
		return "", ErrInvalidRoleType
	}
	return rt, nil
}

// IsValid はロールタイプが有効かを判定します
func (t RoleType) IsValid() bool {
	switch t {
	case RoleTypeSuperAdmin, RoleTypeAdmin, RoleTypeUser, RoleTypeGuest:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (t RoleType) String() string {
	return string(t)
}

// IsAdminType は管理者系のロールタイプかを判定します
func (t RoleType) IsAdminType() bool {
	return t == RoleTypeSuperAdmin || t == RoleTypeAdmin
}
