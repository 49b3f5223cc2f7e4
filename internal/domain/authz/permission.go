package authz

import (
	"github.com/google/uuid"
)

// 権限レベルの境界値
const (
	MinPermissionLevel     = 1
	MaxPermissionLevel     = 100
	DefaultPermissionLevel = 50
)

// Permission は権限定義を表すエンティティ
// コードは一意であり、Grantから参照されている間は論理削除のみ許される
type Permission struct {
	ID           uuid.UUID
	Code         string
	Name         string
	ResourceType ResourceType
	Category     string
	Level        int
	Enabled      bool
	Audit        Audit
}

// NewPermission は新しいPermissionを生成します
func NewPermission(code, name string, resourceType ResourceType, category string, level int) (*Permission, error) {
	if level < MinPermissionLevel || level > MaxPermissionLevel {
		return nil, ErrInvalidPermissionLevel
	}
	return &Permission{
		ID:           uuid.New(),
		Code:         code,
		Name:         name,
		ResourceType: resourceType,
		Category:     category,
		Level:        level,
		Enabled:      true,
		Audit:        NewAudit(),
	}, nil
}

// ReconstructPermission はDBから復元するためのコンストラクタ
func ReconstructPermission(
	id uuid.UUID,
	code, name string,
	resourceType ResourceType,
	category string,
	level int,
	enabled bool,
	audit Audit,
) *Permission {
	return &Permission{
		ID:           id,
		Code:         code,
		Name:         name,
		ResourceType: resourceType,
		Category:     category,
		Level:        level,
		Enabled:      enabled,
		Audit:        audit,
	}
}

// IsUsable は判定に使用可能な権限かを判定します
func (p *Permission) IsUsable() bool {
	return p.Enabled && !p.Audit.IsDeleted()
}

// GroupKey は競合解決のグループ化キー（リソースタイプ:カテゴリ）を返します
func (p *Permission) GroupKey() string {
	return p.ResourceType.String() + ":" + p.Category
}

// CompareLevel は権限レベルを比較します
// 正数は自身のレベルが高いこと、負数は低いことを示す
func (p *Permission) CompareLevel(other *Permission) int {
	if other == nil {
		return 1
	}
	return p.Level - other.Level
}

// IsCompatible は指定されたリソースタイプとカテゴリに適合するかを判定します
func (p *Permission) IsCompatible(resourceType ResourceType, category string) bool {
	return p.ResourceType == resourceType && p.Category == category
}
