package response

import (
	"time"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// AssignmentResponse はロール割り当てレスポンスです
type AssignmentResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	RoleID      string     `json:"roleId"`
	Status      string     `json:"status"`
	EffectiveAt time.Time  `json:"effectiveAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	AssignedBy  string     `json:"assignedBy"`
	Reason      string     `json:"reason,omitempty"`
}

// ToAssignmentResponse はエンティティからレスポンスに変換します
func ToAssignmentResponse(a *authz.RoleAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		RoleID:      a.RoleID.String(),
		Status:      a.Status.String(),
		EffectiveAt: a.EffectiveAt,
		ExpiresAt:   a.ExpiresAt,
		AssignedBy:  a.AssignedBy.String(),
		Reason:      a.Reason,
	}
}
