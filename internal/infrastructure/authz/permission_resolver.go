package authz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// PermissionResolverImpl は権限解決サービスの実装です
// 権限解決の優先順位:
// 1. リソース単位の授権（競合解決の勝者。拒否はロール由来の権限にも優先する）
// 2. ロール由来の有効権限（空間全体のデフォルト）
//
// 判定系は「該当なし」をfalseで返し、ストア障害のみエラーとして伝播する
type PermissionResolverImpl struct {
	assignmentRepo authz.AssignmentRepository
	roleRepo       authz.RoleRepository
	permissionRepo authz.PermissionRepository
	grantRepo      authz.GrantRepository
}

// NewPermissionResolver は新しいPermissionResolverを作成します
func NewPermissionResolver(
	assignmentRepo authz.AssignmentRepository,
	roleRepo authz.RoleRepository,
	permissionRepo authz.PermissionRepository,
	grantRepo authz.GrantRepository,
) *PermissionResolverImpl {
	return &PermissionResolverImpl{
		assignmentRepo: assignmentRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		grantRepo:      grantRepo,
	}
}

// EffectivePermissions はユーザーがロール経由で持つ有効権限の集合を取得します
func (r *PermissionResolverImpl) EffectivePermissions(ctx context.Context, userID uuid.UUID) (*authz.PermissionSet, error) {
	roles, err := r.validRoles(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return r.buildPermissionSet(roles), nil
}

// HasPermission はユーザーがロール経由で指定された権限を持つかを判定します
func (r *PermissionResolverImpl) HasPermission(ctx context.Context, userID uuid.UUID, permissionCode string) (bool, error) {
	set, err := r.EffectivePermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.HasCode(permissionCode), nil
}

// HasResourcePermission はリソース文脈を考慮して権限を判定します
// リソース単位の授権を競合解決し、勝者がいればその状態に従う
// 適用される授権がなければロール由来の権限にフォールバックする
func (r *PermissionResolverImpl) HasResourcePermission(ctx context.Context, userID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, permissionCode string) (bool, error) {
	now := time.Now()

	// 未知・無効の権限コードはエラーではなく拒否として扱う
	perm, err := r.permissionRepo.FindByCode(ctx, permissionCode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !perm.IsUsable() {
		return false, nil
	}

	roles, err := r.validRoles(ctx, userID, now)
	if err != nil {
		return false, err
	}
	roleIDs := make([]uuid.UUID, 0, len(roles))
	for _, role := range roles {
		roleIDs = append(roleIDs, role.ID)
	}

	targetPath, err := r.resolveTargetPath(ctx, spaceID, resourceType, resourceID)
	if err != nil {
		return false, err
	}

	grants, err := r.grantRepo.FindApplicable(ctx, userID, roleIDs, spaceID, resourceType, resourceID, targetPath)
	if err != nil {
		return false, err
	}

	candidates := make([]*authz.Grant, 0, len(grants))
	for _, g := range grants {
		if g.PermissionID == perm.ID {
			candidates = append(candidates, g)
		}
	}

	if winner := authz.ResolveEffective(candidates, now); winner != nil {
		return winner.IsGranted(now), nil
	}

	// 授権がなければロール由来の権限が空間全体のデフォルトとなる
	return r.buildPermissionSet(roles).HasCode(permissionCode), nil
}

// HighestLevel はユーザーが指定リソースタイプで持つ最高権限レベルを取得します
func (r *PermissionResolverImpl) HighestLevel(ctx context.Context, userID uuid.UUID, resourceType authz.ResourceType) (int, error) {
	set, err := r.EffectivePermissions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return set.HighestLevel(resourceType), nil
}

// IsAdmin はユーザーが管理者系ロールを保持しているかを判定します
func (r *PermissionResolverImpl) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	roles, err := r.validRoles(ctx, userID, time.Now())
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if role.IsAdminRole() {
			return true, nil
		}
	}
	return false, nil
}

// validRoles は有効な割り当てに対応する使用可能なロールを割り当て順に返します
// 割り当て順を保つことで、同レベル権限の先着優先タイブレークが固定される
func (r *PermissionResolverImpl) validRoles(ctx context.Context, userID uuid.UUID, now time.Time) ([]*authz.Role, error) {
	assignments, err := r.assignmentRepo.FindValid(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	roles := make([]*authz.Role, 0, len(assignments))
	for _, assignment := range assignments {
		role, err := r.roleRepo.FindByID(ctx, assignment.RoleID)
		if err != nil {
			// 削除済みロールへの割り当ては権限に寄与しない
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if !role.IsAvailable() {
			continue
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// buildPermissionSet はロール一覧から有効権限集合を構築します
func (r *PermissionResolverImpl) buildPermissionSet(roles []*authz.Role) *authz.PermissionSet {
	set := authz.EmptyPermissionSet()
	for _, role := range roles {
		set.AddFromRole(role)
	}
	return set
}

// resolveTargetPath は判定対象リソースの権限パスを求めます
// 実体ツリーを持たないため、対象リソースへの既存授権が保持するパスを優先し、
// なければ空間直下のリソースとして合成する
func (r *PermissionResolverImpl) resolveTargetPath(ctx context.Context, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID) (authz.PermissionPath, error) {
	if resourceID == nil {
		return authz.SpacePath(spaceID), nil
	}

	path, err := r.grantRepo.FindResourcePath(ctx, spaceID, resourceType, *resourceID)
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	return authz.BuildPermissionPath(spaceID, "", resourceID), nil
}

// インターフェースの実装を保証
var _ authz.PermissionResolver = (*PermissionResolverImpl)(nil)
