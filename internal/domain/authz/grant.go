package authz

import (
	"time"

	"github.com/google/uuid"
)

// Grant はリソース単位の授権レコードを表すエンティティ
// (UserID, SpaceID, PermissionID, ResourceType, ResourceID) は未削除レコード間で一意
// ResourceID=nil かつ ResourceType=space は空間全体への授権を意味する
type Grant struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	RoleID            *uuid.UUID
	SpaceID           uuid.UUID
	PermissionID      uuid.UUID
	ResourceType      ResourceType
	ResourceID        *uuid.UUID
	Status            GrantStatus
	GrantType         GrantType
	InheritFromParent bool
	Path              PermissionPath
	Level             int
	GrantedBy         *uuid.UUID
	GrantedAt         time.Time
	ExpiresAt         *time.Time
	Remark            string
	Conditions        string
	Audit             Audit
}

// NewGrant は新しいGrantを生成します
func NewGrant(
	userID, spaceID, permissionID uuid.UUID,
	resourceType ResourceType,
	resourceID *uuid.UUID,
	status GrantStatus,
	grantType GrantType,
	path PermissionPath,
	grantedBy *uuid.UUID,
) *Grant {
	return &Grant{
		ID:                uuid.New(),
		UserID:            userID,
		SpaceID:           spaceID,
		PermissionID:      permissionID,
		ResourceType:      resourceType,
		ResourceID:        resourceID,
		Status:            status,
		GrantType:         grantType,
		InheritFromParent: true,
		Path:              path,
		Level:             DefaultPermissionLevel,
		GrantedBy:         grantedBy,
		GrantedAt:         time.Now(),
		Audit:             NewAudit(),
	}
}

// ReconstructGrant はDBから復元するためのコンストラクタ
func ReconstructGrant(
	id, userID uuid.UUID,
	roleID *uuid.UUID,
	spaceID, permissionID uuid.UUID,
	resourceType ResourceType,
	resourceID *uuid.UUID,
	status GrantStatus,
	grantType GrantType,
	inheritFromParent bool,
	path PermissionPath,
	level int,
	grantedBy *uuid.UUID,
	grantedAt time.Time,
	expiresAt *time.Time,
	remark, conditions string,
	audit Audit,
) *Grant {
	return &Grant{
		ID:                id,
		UserID:            userID,
		RoleID:            roleID,
		SpaceID:           spaceID,
		PermissionID:      permissionID,
		ResourceType:      resourceType,
		ResourceID:        resourceID,
		Status:            status,
		GrantType:         grantType,
		InheritFromParent: inheritFromParent,
		Path:              path,
		Level:             level,
		GrantedBy:         grantedBy,
		GrantedAt:         grantedAt,
		ExpiresAt:         expiresAt,
		Remark:            remark,
		Conditions:        conditions,
		Audit:             audit,
	}
}

// IsExpired は有効期限を過ぎているかを判定します
// 期限ちょうどの時刻は失効扱い（割り当てと同じ境界規約）
func (g *Grant) IsExpired(now time.Time) bool {
	return g.ExpiresAt != nil && !now.Before(*g.ExpiresAt)
}

// IsGranted は有効な授権状態かを判定します
func (g *Grant) IsGranted(now time.Time) bool {
	return g.Status == GrantStatusGranted && !g.IsExpired(now)
}

// IsDenied は拒否状態かを判定します
func (g *Grant) IsDenied() bool {
	return g.Status == GrantStatusDenied
}

// IsDecisive は競合解決で結論を下せる候補かを判定します
// inheritedステータスは祖先授権の写しであり、それ自体は結論を下さない
func (g *Grant) IsDecisive(now time.Time) bool {
	return g.IsDenied() || g.IsGranted(now)
}

// IsSpaceWide は空間全体への授権かを判定します
func (g *Grant) IsSpaceWide() bool {
	return g.ResourceType == ResourceTypeSpace && g.ResourceID == nil
}

// AppliesToResource は指定されたリソースに適用されるかを判定します
func (g *Grant) AppliesToResource(resourceType ResourceType, resourceID *uuid.UUID) bool {
	// 空間全体の授権は空間内の全リソースに適用される
	if g.IsSpaceWide() {
		return true
	}
	if g.ResourceType != resourceType {
		return false
	}
	if g.ResourceID == nil || resourceID == nil {
		return g.ResourceID == resourceID
	}
	return *g.ResourceID == *resourceID
}

// SetLevel は権限レベルを設定します
func (g *Grant) SetLevel(level int) error {
	if level < MinPermissionLevel || level > MaxPermissionLevel {
		return ErrInvalidPermissionLevel
	}
	g.Level = level
	g.Audit.Touch()
	return nil
}

// SetExpiration は有効期限を設定します
func (g *Grant) SetExpiration(expiresAt *time.Time) {
	g.ExpiresAt = expiresAt
	g.Audit.Touch()
}

// Approve は授権を許可状態に変更します
func (g *Grant) Approve(grantedBy uuid.UUID, remark string) {
	g.Status = GrantStatusGranted
	g.GrantedBy = &grantedBy
	g.GrantedAt = time.Now()
	g.Remark = remark
	g.Audit.Touch()
}

// Deny は授権を拒否状態に変更します
func (g *Grant) Deny(deniedBy uuid.UUID, remark string) {
	g.Status = GrantStatusDenied
	g.GrantedBy = &deniedBy
	g.GrantedAt = time.Now()
	g.Remark = remark
	g.Audit.Touch()
}

// Revoke は授権を論理削除します
func (g *Grant) Revoke(remark string) {
	g.Remark = remark
	g.Audit.MarkDeleted()
}
