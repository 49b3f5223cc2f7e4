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

// auditColumns は共通監査カラムのスキャン用バッファ
type auditColumns struct {
	createdAt time.Time
	updatedAt time.Time
	deleted   bool
}

func (a auditColumns) toAudit() authz.Audit {
	return authz.ReconstructAudit(a.createdAt, a.updatedAt, a.deleted)
}

// PermissionRepository は権限定義リポジトリの実装です
type PermissionRepository struct {
	*database.BaseRepository
}

// NewPermissionRepository は新しいPermissionRepositoryを作成します
func NewPermissionRepository(txManager *database.TxManager) *PermissionRepository {
	return &PermissionRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

const permissionColumns = `id, code, name, resource_type, category, level, enabled, created_at, updated_at, is_deleted`

// Create は権限定義を作成します
func (r *PermissionRepository) Create(ctx context.Context, permission *authz.Permission) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO permissions (id, code, name, resource_type, category, level, enabled, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		permission.ID, permission.Code, permission.Name, permission.ResourceType.String(),
		permission.Category, permission.Level, permission.Enabled,
		permission.Audit.CreatedAt, permission.Audit.UpdatedAt, permission.Audit.Deleted,
	)
	return r.HandleError(err)
}

// Save は権限定義を更新します
func (r *PermissionRepository) Save(ctx context.Context, permission *authz.Permission) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		UPDATE permissions
		SET name = $2, category = $3, level = $4, enabled = $5, updated_at = $6, is_deleted = $7
		WHERE id = $1`,
		permission.ID, permission.Name, permission.Category, permission.Level,
		permission.Enabled, permission.Audit.UpdatedAt, permission.Audit.Deleted,
	)
	return r.HandleError(err)
}

// FindByID はIDで権限定義を検索します
func (r *PermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*authz.Permission, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+permissionColumns+`
		FROM permissions
		WHERE id = $1 AND is_deleted = false`, id)

	perm, err := scanPermission(row)
	if err != nil {
		return nil, r.notFoundOr(err)
	}
	return perm, nil
}

// FindByCode はコードで権限定義を検索します
func (r *PermissionRepository) FindByCode(ctx context.Context, code string) (*authz.Permission, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+permissionColumns+`
		FROM permissions
		WHERE code = $1 AND is_deleted = false`, code)

	perm, err := scanPermission(row)
	if err != nil {
		return nil, r.notFoundOr(err)
	}
	return perm, nil
}

// ListByRoleID はロールに紐づく権限の一覧を返します
func (r *PermissionRepository) ListByRoleID(ctx context.Context, roleID uuid.UUID) ([]*authz.Permission, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT p.id, p.code, p.name, p.resource_type, p.category, p.level, p.enabled,
		       p.created_at, p.updated_at, p.is_deleted
		FROM permissions p
		INNER JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1 AND p.is_deleted = false
		ORDER BY p.code`, roleID)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var perms []*authz.Permission
	for rows.Next() {
		perm, err := scanPermission(rows)
		if err != nil {
			return nil, r.HandleError(err)
		}
		perms = append(perms, perm)
	}
	return perms, r.HandleError(rows.Err())
}

// notFoundOr はNotFoundをapperrorへ変換し、それ以外はそのまま返します
func (r *PermissionRepository) notFoundOr(err error) error {
	handled := r.HandleError(err)
	if errors.Is(handled, database.ErrNotFound) {
		return apperror.NewNotFoundError("permission")
	}
	return handled
}

// scanPermission は行を権限エンティティに変換します
func scanPermission(row pgx.Row) (*authz.Permission, error) {
	var (
		id                   uuid.UUID
		code, name, resource string
		category             string
		level                int
		enabled              bool
		audit                auditColumns
	)

	if err := row.Scan(&id, &code, &name, &resource, &category, &level, &enabled,
		&audit.createdAt, &audit.updatedAt, &audit.deleted); err != nil {
		return nil, err
	}

	rt, err := authz.NewResourceType(resource)
	if err != nil {
		return nil, err
	}

	return authz.ReconstructPermission(id, code, name, rt, category, level, enabled, audit.toAudit()), nil
}

// インターフェースの実装を保証
var _ authz.PermissionRepository = (*PermissionRepository)(nil)
