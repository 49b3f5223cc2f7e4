package response

import (
	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// CheckPermissionResponse は権限確認レスポンスです
type CheckPermissionResponse struct {
	Allowed bool `json:"allowed"`
}

// EffectivePermissionsResponse は有効権限一覧レスポンスです
type EffectivePermissionsResponse struct {
	Permissions []PermissionResponse `json:"permissions"`
}

// PermissionResponse は権限定義レスポンスです
type PermissionResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	ResourceType string `json:"resourceType"`
	Category     string `json:"category"`
	Level        int    `json:"level"`
}

// HighestLevelResponse は最高権限レベルレスポンスです
type HighestLevelResponse struct {
	ResourceType string `json:"resourceType"`
	Level        int    `json:"level"`
}

// IsAdminResponse は管理者判定レスポンスです
type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// SweepResponse は時限割り当て掃き出しレスポンスです
type SweepResponse struct {
	Expired   int64 `json:"expired"`
	Activated int64 `json:"activated"`
}

// ToPermissionResponse はエンティティからレスポンスに変換します
func ToPermissionResponse(p *authz.Permission) PermissionResponse {
	return PermissionResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		ResourceType: p.ResourceType.String(),
		Category:     p.Category,
		Level:        p.Level,
	}
}

// ToEffectivePermissionsResponse は権限リストをレスポンスに変換します
func ToEffectivePermissionsResponse(perms []*authz.Permission) EffectivePermissionsResponse {
	responses := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		responses[i] = ToPermissionResponse(p)
	}
	return EffectivePermissionsResponse{Permissions: responses}
}
