package request

// CreateRoleRequest はロール作成リクエストです
type CreateRoleRequest struct {
	Code string `json:"code" validate:"required,rolecode"`
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=super_admin admin user guest"`
}

// UpdateRoleRequest はロール更新リクエストです
// 指定されたフィールドのみ更新する
type UpdateRoleRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Enabled *bool   `json:"enabled,omitempty"`
}
