package request

import "time"

// AssignRoleRequest はロール割り当てリクエストです
type AssignRoleRequest struct {
	RoleCode   string     `json:"roleCode" validate:"required,rolecode"`
	AssignedBy string     `json:"assignedBy" validate:"required,uuid"`
	Reason     string     `json:"reason,omitempty" validate:"max=500"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// SuspendRoleRequest はロール割り当て一時停止リクエストです
type SuspendRoleRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// UpdateExpirationRequest はロール割り当ての有効期限変更リクエストです
// expiresAt=nullは無期限化を意味する
type UpdateExpirationRequest struct {
	ExpiresAt *time.Time `json:"expiresAt"`
}
