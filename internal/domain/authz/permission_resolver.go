package authz

import (
	"context"

	"github.com/google/uuid"
)

// PermissionResolver は権限解決を行うサービスインターフェース
// 判定系は「該当なし」をエラーではなくfalseで表現する
// ストア障害はエラーとして伝播し、呼び出し側は拒否として扱う（fail-closed）
type PermissionResolver interface {
	// EffectivePermissions はユーザーがロール経由で持つ有効権限の集合を取得します
	EffectivePermissions(ctx context.Context, userID uuid.UUID) (*PermissionSet, error)

	// HasPermission はユーザーがロール経由で指定された権限を持つかを判定します
	HasPermission(ctx context.Context, userID uuid.UUID, permissionCode string) (bool, error)

	// HasResourcePermission はリソース文脈を考慮して権限を判定します
	// リソース単位の授権（直接・継承・ロール由来）を競合解決した結果が優先され、
	// 該当する授権がなければロール由来の権限にフォールバックする
	HasResourcePermission(ctx context.Context, userID, spaceID uuid.UUID, resourceType ResourceType, resourceID *uuid.UUID, permissionCode string) (bool, error)

	// HighestLevel はユーザーが指定リソースタイプで持つ最高権限レベルを取得します
	HighestLevel(ctx context.Context, userID uuid.UUID, resourceType ResourceType) (int, error)

	// IsAdmin はユーザーが管理者系ロールを保持しているかを判定します
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// PermissionInvalidator は権限キャッシュの無効化を行うインターフェース
// ロール・授権・割り当てへのあらゆる変更の直後に同期的に呼ばれる
type PermissionInvalidator interface {
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
