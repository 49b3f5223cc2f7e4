package request

// CheckPermissionRequest はリソース文脈を持たない権限確認リクエストです
type CheckPermissionRequest struct {
	UserID         string `json:"userId" validate:"required,uuid"`
	PermissionCode string `json:"permissionCode" validate:"required,permissioncode"`
}

// CheckResourcePermissionRequest はリソース単位の権限確認リクエストです
// resourceIdを省略した場合は空間全体に対する確認になる
type CheckResourcePermissionRequest struct {
	UserID         string  `json:"userId" validate:"required,uuid"`
	SpaceID        string  `json:"spaceId" validate:"required,uuid"`
	ResourceType   string  `json:"resourceType" validate:"required,oneof=space folder file"`
	ResourceID     *string `json:"resourceId,omitempty" validate:"omitempty,uuid"`
	PermissionCode string  `json:"permissionCode" validate:"required,permissioncode"`
}
