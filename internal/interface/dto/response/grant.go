package response

import (
	"time"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// GrantResponse はリソース単位の授権レスポンスです
type GrantResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	RoleID            *string    `json:"roleId,omitempty"`
	SpaceID           string     `json:"spaceId"`
	PermissionID      string     `json:"permissionId"`
	ResourceType      string     `json:"resourceType"`
	ResourceID        *string    `json:"resourceId,omitempty"`
	Status            string     `json:"status"`
	GrantType         string     `json:"grantType"`
	InheritFromParent bool       `json:"inheritFromParent"`
	Path              string     `json:"path"`
	Level             int        `json:"level"`
	GrantedBy         *string    `json:"grantedBy,omitempty"`
	GrantedAt         time.Time  `json:"grantedAt"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	Remark            string     `json:"remark,omitempty"`
}

// ToGrantResponse はエンティティからレスポンスに変換します
func ToGrantResponse(g *authz.Grant) GrantResponse {
	resp := GrantResponse{
		ID:                g.ID.String(),
		UserID:            g.UserID.String(),
		SpaceID:           g.SpaceID.String(),
		PermissionID:      g.PermissionID.String(),
		ResourceType:      g.ResourceType.String(),
		Status:            g.Status.String(),
		GrantType:         g.GrantType.String(),
		InheritFromParent: g.InheritFromParent,
		Path:              g.Path.String(),
		Level:             g.Level,
		GrantedAt:         g.GrantedAt,
		ExpiresAt:         g.ExpiresAt,
		Remark:            g.Remark,
	}
	if g.RoleID != nil {
		roleID := g.RoleID.String()
		resp.RoleID = &roleID
	}
	if g.ResourceID != nil {
		resourceID := g.ResourceID.String()
		resp.ResourceID = &resourceID
	}
	if g.GrantedBy != nil {
		grantedBy := g.GrantedBy.String()
		resp.GrantedBy = &grantedBy
	}
	return resp
}

// ToGrantListResponse は授権リストをレスポンスリストに変換します
func ToGrantListResponse(grants []*authz.Grant) []GrantResponse {
	responses := make([]GrantResponse, len(grants))
	for i, g := range grants {
		responses[i] = ToGrantResponse(g)
	}
	return responses
}
