package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// PermissionCache は権限解決結果のキャッシュを提供します
// 有効権限集合・リソース判定結果・管理者判定をユーザー単位のキー空間に保持し、
// 無効化はユーザー単位のパターン削除で一括して行う
type PermissionCache struct {
	cache *Cache
}

// NewPermissionCache は新しいPermissionCacheを作成します
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	return &PermissionCache{
		cache: NewCache(client, NamespaceAuthz, ttl),
	}
}

// GetEffective はキャッシュされた有効権限集合を取得します
// キャッシュミス時はErrCacheMissを返す
func (c *PermissionCache) GetEffective(ctx context.Context, userID uuid.UUID) (*authz.PermissionSet, error) {
	var perms []*authz.Permission
	if err := c.cache.Get(ctx, UserPermsKey(userID), &perms); err != nil {
		return nil, err
	}
	return authz.NewPermissionSet(perms...), nil
}

// SetEffective は有効権限集合をキャッシュします
func (c *PermissionCache) SetEffective(ctx context.Context, userID uuid.UUID, set *authz.PermissionSet) error {
	return c.cache.Set(ctx, UserPermsKey(userID), set.List())
}

// GetCheck はキャッシュされたリソース判定結果を取得します
func (c *PermissionCache) GetCheck(ctx context.Context, userID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, permissionCode string) (bool, error) {
	var allowed bool
	key := ResourceCheckKey(userID, spaceID, resourceType, resourceID, permissionCode)
	if err := c.cache.Get(ctx, key, &allowed); err != nil {
		return false, err
	}
	return allowed, nil
}

// SetCheck はリソース判定結果をキャッシュします
func (c *PermissionCache) SetCheck(ctx context.Context, userID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, permissionCode string, allowed bool) error {
	key := ResourceCheckKey(userID, spaceID, resourceType, resourceID, permissionCode)
	return c.cache.Set(ctx, key, allowed)
}

// GetAdmin はキャッシュされた管理者判定を取得します
func (c *PermissionCache) GetAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var isAdmin bool
	if err := c.cache.Get(ctx, UserAdminKey(userID), &isAdmin); err != nil {
		return false, err
	}
	return isAdmin, nil
}

// SetAdmin は管理者判定をキャッシュします
func (c *PermissionCache) SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	return c.cache.Set(ctx, UserAdminKey(userID), isAdmin)
}

// InvalidateUser はユーザーの権限キャッシュを全て削除します
// 粒度を細かくするより、変更時に丸ごと消して再計算させる方が安全
func (c *PermissionCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	return c.cache.DeletePattern(ctx, UserPattern(userID))
}

// インターフェースの実装を保証
var _ authz.PermissionInvalidator = (*PermissionCache)(nil)
