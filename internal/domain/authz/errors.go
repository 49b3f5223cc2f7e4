package authz

import "errors"

// 値オブジェクトのバリデーションエラー
var (
	ErrInvalidResourceType     = errors.New("invalid resource type")
	ErrInvalidGrantStatus      = errors.New("invalid grant status")
	ErrInvalidGrantType        = errors.New("invalid grant type")
	ErrInvalidAssignmentStatus = errors.New("invalid assignment status")
	ErrInvalidRoleType         = errors.New("invalid role type")
	ErrInvalidPermissionLevel  = errors.New("permission level must be between 1 and 100")
)

// エンジンのエラー分類
// 判定系（HasPermission等）はこれらを返さず、該当なしは常にfalseで表現する
var (
	ErrRoleNotFound        = errors.New("role not found")
	ErrRoleUnavailable     = errors.New("role is disabled or deleted")
	ErrPermissionNotFound  = errors.New("permission not found")
	ErrAlreadyAssigned     = errors.New("role is already assigned to the user")
	ErrNotAssigned         = errors.New("role is not assigned to the user")
	ErrLastAdminProtected  = errors.New("at least one active system admin assignment must remain")
	ErrSystemRoleProtected = errors.New("system role cannot be modified")
	ErrInvalidResourcePath = errors.New("invalid resource path")
	ErrStoreUnavailable    = errors.New("durable store unavailable")
)
