package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/database"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// GrantRepository は授権レコードリポジトリの実装です
// 未削除レコードの一意性はpartial unique indexで保証される
type GrantRepository struct {
	*database.BaseRepository
}

// NewGrantRepository は新しいGrantRepositoryを作成します
func NewGrantRepository(txManager *database.TxManager) *GrantRepository {
	return &GrantRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

const grantColumns = `id, user_id, role_id, space_id, permission_id, resource_type, resource_id,
	status, grant_type, inherit_from_parent, permission_path, level,
	granted_by, granted_at, expires_at, remark, conditions,
	created_at, updated_at, is_deleted`

// Create は授権レコードを作成します
func (r *GrantRepository) Create(ctx context.Context, grant *authz.Grant) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO space_grants (id, user_id, role_id, space_id, permission_id, resource_type, resource_id,
			status, grant_type, inherit_from_parent, permission_path, level,
			granted_by, granted_at, expires_at, remark, conditions,
			created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		grant.ID, grant.UserID, grant.RoleID, grant.SpaceID, grant.PermissionID,
		grant.ResourceType.String(), grant.ResourceID,
		grant.Status.String(), grant.GrantType.String(), grant.InheritFromParent,
		grant.Path.String(), grant.Level,
		grant.GrantedBy, grant.GrantedAt, grant.ExpiresAt, grant.Remark, grant.Conditions,
		grant.Audit.CreatedAt, grant.Audit.UpdatedAt, grant.Audit.Deleted,
	)
	if handled := r.HandleError(err); handled != nil {
		// 未削除レコードに対する部分一意制約の違反は重複授権
		if errors.Is(handled, database.ErrConflict) {
			return apperror.NewConflictError("grant already exists for this resource and permission")
		}
		return handled
	}
	return nil
}

// Save は授権レコードを更新します（論理削除の反映を含む）
func (r *GrantRepository) Save(ctx context.Context, grant *authz.Grant) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		UPDATE space_grants
		SET status = $2, grant_type = $3, inherit_from_parent = $4, level = $5,
		    granted_by = $6, granted_at = $7, expires_at = $8, remark = $9, conditions = $10,
		    updated_at = $11, is_deleted = $12
		WHERE id = $1`,
		grant.ID, grant.Status.String(), grant.GrantType.String(), grant.InheritFromParent,
		grant.Level, grant.GrantedBy, grant.GrantedAt, grant.ExpiresAt,
		grant.Remark, grant.Conditions, grant.Audit.UpdatedAt, grant.Audit.Deleted,
	)
	return r.HandleError(err)
}

// FindByID はIDで授権レコードを検索します
func (r *GrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*authz.Grant, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+grantColumns+`
		FROM space_grants
		WHERE id = $1 AND is_deleted = false`, id)

	return r.scanGrantNotFound(row)
}

// FindByUniqueKey は一意キーで授権レコードを検索します
// resource_idはNULL同士も一致とみなすためIS NOT DISTINCT FROMを使う
func (r *GrantRepository) FindByUniqueKey(ctx context.Context, userID, spaceID, permissionID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID) (*authz.Grant, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+grantColumns+`
		FROM space_grants
		WHERE user_id = $1 AND space_id = $2 AND permission_id = $3
		  AND resource_type = $4 AND resource_id IS NOT DISTINCT FROM $5
		  AND is_deleted = false`,
		userID, spaceID, permissionID, resourceType.String(), resourceID)

	return r.scanGrantNotFound(row)
}

// FindApplicable は判定対象リソースに適用されうる授権を取得します
// リソース一致・空間全体・祖先パスからの継承の三条件を一度のクエリで評価する
func (r *GrantRepository) FindApplicable(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, path authz.PermissionPath) ([]*authz.Grant, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT `+grantColumns+`
		FROM space_grants
		WHERE (user_id = $1 OR role_id = ANY($2))
		  AND space_id = $3
		  AND is_deleted = false
		  AND (
		        (resource_type = $4 AND resource_id IS NOT DISTINCT FROM $5)
		     OR (resource_type = 'space' AND resource_id IS NULL)
		     OR (inherit_from_parent = true AND (permission_path = $6 OR $6 LIKE permission_path || '/%'))
		  )
		ORDER BY granted_at, id`,
		userID, roleIDs, spaceID, resourceType.String(), resourceID, path.String())
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	return r.collectGrants(rows)
}

// FindResourcePath は対象リソースへの既存授権が保持する権限パスを返します
func (r *GrantRepository) FindResourcePath(ctx context.Context, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID uuid.UUID) (authz.PermissionPath, error) {
	querier := r.Querier(ctx)

	var path string
	err := querier.QueryRow(ctx, `
		SELECT permission_path
		FROM space_grants
		WHERE space_id = $1 AND resource_type = $2 AND resource_id = $3 AND is_deleted = false
		ORDER BY granted_at
		LIMIT 1`, spaceID, resourceType.String(), resourceID).Scan(&path)
	if err != nil {
		handled := r.HandleError(err)
		if errors.Is(handled, database.ErrNotFound) {
			return "", nil
		}
		return "", handled
	}
	return authz.NewPermissionPath(path)
}

// ListByUserAndSpace はユーザーの空間内の授権一覧を返します
func (r *GrantRepository) ListByUserAndSpace(ctx context.Context, userID, spaceID uuid.UUID) ([]*authz.Grant, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT `+grantColumns+`
		FROM space_grants
		WHERE user_id = $1 AND space_id = $2 AND is_deleted = false
		ORDER BY granted_at, id`, userID, spaceID)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	return r.collectGrants(rows)
}

// SoftDelete は授権レコードを論理削除します
func (r *GrantRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx, `
		UPDATE space_grants
		SET is_deleted = true, updated_at = $2
		WHERE id = $1 AND is_deleted = false`, id, time.Now())
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("grant")
	}
	return nil
}

// collectGrants は複数行を授権エンティティのスライスに変換します
func (r *GrantRepository) collectGrants(rows pgx.Rows) ([]*authz.Grant, error) {
	var grants []*authz.Grant
	for rows.Next() {
		grant, err := r.scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, r.HandleError(rows.Err())
}

// scanGrantNotFound は単一行スキャンでNotFoundをapperrorへ変換します
func (r *GrantRepository) scanGrantNotFound(row pgx.Row) (*authz.Grant, error) {
	grant, err := r.scanGrant(row)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.NewNotFoundError("grant")
		}
		return nil, err
	}
	return grant, nil
}

// scanGrant は行を授権エンティティに変換します
func (r *GrantRepository) scanGrant(row pgx.Row) (*authz.Grant, error) {
	var (
		id, userID, spaceID, permissionID uuid.UUID
		roleID, resourceID, grantedBy     *uuid.UUID
		resourceType, status, grantType   string
		inheritFromParent                 bool
		path                              string
		level                             int
		grantedAt                         time.Time
		expiresAt                         *time.Time
		remark, conditions                string
		audit                             auditColumns
	)

	if err := row.Scan(&id, &userID, &roleID, &spaceID, &permissionID, &resourceType, &resourceID,
		&status, &grantType, &inheritFromParent, &path, &level,
		&grantedBy, &grantedAt, &expiresAt, &remark, &conditions,
		&audit.createdAt, &audit.updatedAt, &audit.deleted); err != nil {
		return nil, r.HandleError(err)
	}

	rt, err := authz.NewResourceType(resourceType)
	if err != nil {
		return nil, err
	}
	st, err := authz.NewGrantStatus(status)
	if err != nil {
		return nil, err
	}
	gt, err := authz.NewGrantType(grantType)
	if err != nil {
		return nil, err
	}
	pp, err := authz.NewPermissionPath(path)
	if err != nil {
		return nil, err
	}

	return authz.ReconstructGrant(id, userID, roleID, spaceID, permissionID, rt, resourceID,
		st, gt, inheritFromParent, pp, level, grantedBy, grantedAt, expiresAt,
		remark, conditions, audit.toAudit()), nil
}

// インターフェースの実装を保証
var _ authz.GrantRepository = (*GrantRepository)(nil)
