package request

import "time"

// GrantPermissionRequest はリソース単位の授権リクエストです
// parentPathは親リソースの権限パス。省略時は空間直下として扱う
type GrantPermissionRequest struct {
	UserID         string     `json:"userId" validate:"required,uuid"`
	RoleID         *string    `json:"roleId,omitempty" validate:"omitempty,uuid"`
	SpaceID        string     `json:"spaceId" validate:"required,uuid"`
	PermissionCode string     `json:"permissionCode" validate:"required,permissioncode"`
	ResourceType   string     `json:"resourceType" validate:"required,oneof=space folder file"`
	ResourceID     *string    `json:"resourceId,omitempty" validate:"omitempty,uuid"`
	ParentPath     string     `json:"parentPath,omitempty"`
	Level          int        `json:"level,omitempty" validate:"omitempty,gte=1,lte=100"`
	GrantedBy      string     `json:"grantedBy" validate:"required,uuid"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	Remark         string     `json:"remark,omitempty" validate:"max=500"`
}

// DenyPermissionRequest はリソース単位の明示的拒否リクエストです
type DenyPermissionRequest struct {
	UserID         string  `json:"userId" validate:"required,uuid"`
	SpaceID        string  `json:"spaceId" validate:"required,uuid"`
	PermissionCode string  `json:"permissionCode" validate:"required,permissioncode"`
	ResourceType   string  `json:"resourceType" validate:"required,oneof=space folder file"`
	ResourceID     *string `json:"resourceId,omitempty" validate:"omitempty,uuid"`
	ParentPath     string  `json:"parentPath,omitempty"`
	DeniedBy       string  `json:"deniedBy" validate:"required,uuid"`
	Remark         string  `json:"remark,omitempty" validate:"max=500"`
}
