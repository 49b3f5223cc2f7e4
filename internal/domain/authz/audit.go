package authz

import "time"

// Audit はエンティティ共通の監査フィールドを表す値オブジェクト
// 削除は常に論理削除（tombstone）であり、物理削除は行わない
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
}

// NewAudit は新しいAuditを生成します
func NewAudit() Audit {
	now := time.Now()
	return Audit{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReconstructAudit はDBから復元するためのコンストラクタ
func ReconstructAudit(createdAt, updatedAt time.Time, deleted bool) Audit {
	return Audit{
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Deleted:   deleted,
	}
}

// Touch は更新日時を現在時刻に設定します
func (a *Audit) Touch() {
	a.UpdatedAt = time.Now()
}

// MarkDeleted は論理削除します
func (a *Audit) MarkDeleted() {
	a.Deleted = true
	a.Touch()
}

// IsDeleted は論理削除済みかを判定します
func (a Audit) IsDeleted() bool {
	return a.Deleted
}
