package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/database"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// RoleRepository はロールリポジトリの実装です
type RoleRepository struct {
	*database.BaseRepository
}

// NewRoleRepository は新しいRoleRepositoryを作成します
func NewRoleRepository(txManager *database.TxManager) *RoleRepository {
	return &RoleRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

const roleColumns = `id, code, name, role_type, enabled, is_system, created_at, updated_at, is_deleted`

// Create はロールを作成します
func (r *RoleRepository) Create(ctx context.Context, role *authz.Role) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO roles (id, code, name, role_type, enabled, is_system, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		role.ID, role.Code, role.Name, role.Type.String(), role.Enabled, role.System,
		role.Audit.CreatedAt, role.Audit.UpdatedAt, role.Audit.Deleted,
	)
	if handled := r.HandleError(err); handled != nil {
		if errors.Is(handled, database.ErrConflict) {
			return apperror.NewConflictError("role code already exists")
		}
		return handled
	}
	return nil
}

// Save はロールを更新します（論理削除の反映を含む）
func (r *RoleRepository) Save(ctx context.Context, role *authz.Role) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		UPDATE roles
		SET name = $2, role_type = $3, enabled = $4, updated_at = $5, is_deleted = $6
		WHERE id = $1`,
		role.ID, role.Name, role.Type.String(), role.Enabled,
		role.Audit.UpdatedAt, role.Audit.Deleted,
	)
	return r.HandleError(err)
}

// FindByID はIDでロールを検索します（権限込み）
func (r *RoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*authz.Role, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+roleColumns+`
		FROM roles
		WHERE id = $1 AND is_deleted = false`, id)

	return r.scanRoleWithPermissions(ctx, row)
}

// FindByCode はコードでロールを検索します（権限込み）
func (r *RoleRepository) FindByCode(ctx context.Context, code string) (*authz.Role, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+roleColumns+`
		FROM roles
		WHERE code = $1 AND is_deleted = false`, code)

	return r.scanRoleWithPermissions(ctx, row)
}

// ListEnabled は有効なロールの一覧を返します
func (r *RoleRepository) ListEnabled(ctx context.Context) ([]*authz.Role, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT `+roleColumns+`
		FROM roles
		WHERE enabled = true AND is_deleted = false
		ORDER BY created_at`)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var roles []*authz.Role
	for rows.Next() {
		role, err := r.scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err)
	}

	for _, role := range roles {
		perms, err := r.loadPermissions(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
	}

	return roles, nil
}

// scanRoleWithPermissions は単一行をスキャンし、権限を読み込んで返します
func (r *RoleRepository) scanRoleWithPermissions(ctx context.Context, row pgx.Row) (*authz.Role, error) {
	role, err := r.scanRole(row)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.NewNotFoundError("role")
		}
		return nil, err
	}

	perms, err := r.loadPermissions(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms

	return role, nil
}

// scanRole は行をロールエンティティに変換します
func (r *RoleRepository) scanRole(row pgx.Row) (*authz.Role, error) {
	var (
		id                   uuid.UUID
		code, name, roleType string
		enabled, system      bool
		audit                auditColumns
	)

	if err := row.Scan(&id, &code, &name, &roleType, &enabled, &system,
		&audit.createdAt, &audit.updatedAt, &audit.deleted); err != nil {
		return nil, r.HandleError(err)
	}

	rt, err := authz.NewRoleType(roleType)
	if err != nil {
		return nil, err
	}

	return authz.ReconstructRole(id, code, name, rt, nil, enabled, system, audit.toAudit()), nil
}

// loadPermissions はロールに紐づく権限を読み込みます
func (r *RoleRepository) loadPermissions(ctx context.Context, roleID uuid.UUID) ([]*authz.Permission, error) {
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

// インターフェースの実装を保証
var _ authz.RoleRepository = (*RoleRepository)(nil)
