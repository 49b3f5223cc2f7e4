package response

import (
	"time"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// RoleResponse はロールレスポンスです
type RoleResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Enabled   bool      `json:"enabled"`
	System    bool      `json:"system"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToRoleResponse はエンティティからレスポンスに変換します
func ToRoleResponse(role *authz.Role) RoleResponse {
	return RoleResponse{
		ID:        role.ID.String(),
		Code:      role.Code,
		Name:      role.Name,
		Type:      role.Type.String(),
		Enabled:   role.Enabled,
		System:    role.System,
		CreatedAt: role.Audit.CreatedAt,
		UpdatedAt: role.Audit.UpdatedAt,
	}
}
