package cache

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// NamespaceAuthz は権限キャッシュの名前空間です
const NamespaceAuthz = "authz"

// CacheKey は名前空間付きのキャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("cache:%s:%s", namespace, key)
}

// UserPermsKey はユーザーの有効権限集合のキーを生成します
// cache:authz:user:{user_id}:perms
func UserPermsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:perms", userID.String())
}

// UserAdminKey はユーザーの管理者判定結果のキーを生成します
// cache:authz:user:{user_id}:admin
func UserAdminKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:admin", userID.String())
}

// ResourceCheckKey はリソース単位の判定結果のキーを生成します
// cache:authz:user:{user_id}:check:{space_id}:{resource_type}:{resource_id}:{code}
func ResourceCheckKey(userID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, permissionCode string) string {
	rid := "-"
	if resourceID != nil {
		rid = resourceID.String()
	}
	return fmt.Sprintf("user:%s:check:%s:%s:%s:%s",
		userID.String(), spaceID.String(), resourceType.String(), rid, permissionCode)
}

// UserPattern はユーザーの権限キャッシュ全体に一致するパターンを生成します
// ロール・授権・割り当てのいずれの変更でもユーザー単位で丸ごと消す
func UserPattern(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:*", userID.String())
}
