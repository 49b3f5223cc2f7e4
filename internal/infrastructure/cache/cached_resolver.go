package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/logger"
)

// CachedResolver はPermissionResolverのキャッシュデコレータです
// キャッシュ層の障害では判定を失敗させず、直接計算へフォールバックする
// 計算元のエラー（ストア障害を含む）はそのまま伝播する
type CachedResolver struct {
	inner authz.PermissionResolver
	cache *PermissionCache
}

// NewCachedResolver は新しいCachedResolverを作成します
func NewCachedResolver(inner authz.PermissionResolver, cache *PermissionCache) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: cache,
	}
}

// EffectivePermissions はユーザーの有効権限集合を取得します
func (r *CachedResolver) EffectivePermissions(ctx context.Context, userID uuid.UUID) (*authz.PermissionSet, error) {
	set, err := r.cache.GetEffective(ctx, userID)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn(ctx, "permission cache read failed, falling back", "error", err)
	}

	set, err = r.inner.EffectivePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetEffective(ctx, userID, set); err != nil {
		logger.Warn(ctx, "permission cache write failed", "error", err)
	}
	return set, nil
}

// HasPermission はユーザーがロール経由で指定された権限を持つかを判定します
func (r *CachedResolver) HasPermission(ctx context.Context, userID uuid.UUID, permissionCode string) (bool, error) {
	set, err := r.EffectivePermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.HasCode(permissionCode), nil
}

// HasResourcePermission はリソース文脈を考慮して権限を判定します
func (r *CachedResolver) HasResourcePermission(ctx context.Context, userID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, permissionCode string) (bool, error) {
	allowed, err := r.cache.GetCheck(ctx, userID, spaceID, resourceType, resourceID, permissionCode)
	if err == nil {
		return allowed, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn(ctx, "permission cache read failed, falling back", "error", err)
	}

	allowed, err = r.inner.HasResourcePermission(ctx, userID, spaceID, resourceType, resourceID, permissionCode)
	if err != nil {
		return false, err
	}

	if err := r.cache.SetCheck(ctx, userID, spaceID, resourceType, resourceID, permissionCode, allowed); err != nil {
		logger.Warn(ctx, "permission cache write failed", "error", err)
	}
	return allowed, nil
}

// HighestLevel はユーザーが指定リソースタイプで持つ最高権限レベルを取得します
func (r *CachedResolver) HighestLevel(ctx context.Context, userID uuid.UUID, resourceType authz.ResourceType) (int, error) {
	set, err := r.EffectivePermissions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return set.HighestLevel(resourceType), nil
}

// IsAdmin はユーザーが管理者系ロールを保持しているかを判定します
func (r *CachedResolver) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	isAdmin, err := r.cache.GetAdmin(ctx, userID)
	if err == nil {
		return isAdmin, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn(ctx, "permission cache read failed, falling back", "error", err)
	}

	isAdmin, err = r.inner.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}

	if err := r.cache.SetAdmin(ctx, userID, isAdmin); err != nil {
		logger.Warn(ctx, "permission cache write failed", "error", err)
	}
	return isAdmin, nil
}

// インターフェースの実装を保証
var _ authz.PermissionResolver = (*CachedResolver)(nil)
