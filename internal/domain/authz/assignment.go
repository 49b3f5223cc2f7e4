package authz

import (
	"time"

	"github.com/google/uuid"
)

// RoleAssignment はユーザーとロールの時限付き割り当てを表すエンティティ
type RoleAssignment struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	RoleID      uuid.UUID
	Status      AssignmentStatus
	EffectiveAt time.Time
	ExpiresAt   *time.Time
	AssignedBy  uuid.UUID
	Reason      string
	Audit       Audit
}

// NewRoleAssignment は新しいRoleAssignmentを生成します
func NewRoleAssignment(userID, roleID, assignedBy uuid.UUID, reason string, expiresAt *time.Time) *RoleAssignment {
	return &RoleAssignment{
		ID:          uuid.New(),
		UserID:      userID,
		RoleID:      roleID,
		Status:      AssignmentStatusActive,
		EffectiveAt: time.Now(),
		ExpiresAt:   expiresAt,
		AssignedBy:  assignedBy,
		Reason:      reason,
		Audit:       NewAudit(),
	}
}

// ReconstructRoleAssignment はDBから復元するためのコンストラクタ
func ReconstructRoleAssignment(
	id, userID, roleID uuid.UUID,
	status AssignmentStatus,
	effectiveAt time.Time,
	expiresAt *time.Time,
	assignedBy uuid.UUID,
	reason string,
	audit Audit,
) *RoleAssignment {
	return &RoleAssignment{
		ID:          id,
		UserID:      userID,
		RoleID:      roleID,
		Status:      status,
		EffectiveAt: effectiveAt,
		ExpiresAt:   expiresAt,
		AssignedBy:  assignedBy,
		Reason:      reason,
		Audit:       audit,
	}
}

// IsExpired は有効期限を過ぎているかを判定します
func (a *RoleAssignment) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && !now.Before(*a.ExpiresAt)
}

// IsValid は権限計算に寄与する有効な割り当てかを判定します
// statusがactiveで、有効開始済み、未失効、未削除であること
// 期限切れはステータス遷移を待たずにここで弾かれる（遅延掃き出しと収束する）
func (a *RoleAssignment) IsValid(now time.Time) bool {
	if a.Status != AssignmentStatusActive {
		return false
	}
	if now.Before(a.EffectiveAt) {
		return false
	}
	if a.IsExpired(now) {
		return false
	}
	return !a.Audit.IsDeleted()
}

// IsActive はステータスがactiveかを判定します
func (a *RoleAssignment) IsActive() bool {
	return a.Status == AssignmentStatusActive
}

// Reactivate は非アクティブな割り当てを再有効化します
func (a *RoleAssignment) Reactivate(assignedBy uuid.UUID, reason string, expiresAt *time.Time) {
	a.Status = AssignmentStatusActive
	a.EffectiveAt = time.Now()
	a.ExpiresAt = expiresAt
	a.AssignedBy = assignedBy
	a.Reason = reason
	a.Audit.Touch()
}

// Activate はpendingまたはsuspendedの割り当てをactiveに遷移します
func (a *RoleAssignment) Activate() {
	if a.Status == AssignmentStatusPending || a.Status == AssignmentStatusSuspended {
		a.Status = AssignmentStatusActive
		a.Audit.Touch()
	}
}

// Suspend は割り当てを一時停止します
func (a *RoleAssignment) Suspend(reason string) {
	a.Status = AssignmentStatusSuspended
	a.Reason = reason
	a.Audit.Touch()
}

// Revoke は割り当てを取り消します
func (a *RoleAssignment) Revoke(reason string) {
	a.Status = AssignmentStatusRevoked
	a.Reason = reason
	a.Audit.Touch()
}

// MarkExpired は期限切れの割り当てをexpiredに遷移します
// 冪等であり、期限が切れていない場合は何もしない
func (a *RoleAssignment) MarkExpired(now time.Time) bool {
	if a.Status == AssignmentStatusActive && a.IsExpired(now) {
		a.Status = AssignmentStatusExpired
		a.Audit.Touch()
		return true
	}
	return false
}

// UpdateExpiration は有効期限を更新します
func (a *RoleAssignment) UpdateExpiration(expiresAt *time.Time) {
	a.ExpiresAt = expiresAt
	a.Audit.Touch()
}
