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

// AssignmentRepository はロール割り当てリポジトリの実装です
// (user_id, role_id) の一意制約はスキーマ側で定義され、
// 並行したassignの正しさはこの制約が保証する
type AssignmentRepository struct {
	*database.BaseRepository
}

// NewAssignmentRepository は新しいAssignmentRepositoryを作成します
func NewAssignmentRepository(txManager *database.TxManager) *AssignmentRepository {
	return &AssignmentRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

const assignmentColumns = `id, user_id, role_id, status, effective_at, expires_at, assigned_by, reason, created_at, updated_at, is_deleted`

// Create はロール割り当てを作成します
func (r *AssignmentRepository) Create(ctx context.Context, assignment *authz.RoleAssignment) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO role_assignments (id, user_id, role_id, status, effective_at, expires_at, assigned_by, reason, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		assignment.ID, assignment.UserID, assignment.RoleID, assignment.Status.String(),
		assignment.EffectiveAt, assignment.ExpiresAt, assignment.AssignedBy, assignment.Reason,
		assignment.Audit.CreatedAt, assignment.Audit.UpdatedAt, assignment.Audit.Deleted,
	)
	if handled := r.HandleError(err); handled != nil {
		// (user_id, role_id) の一意制約違反は重複割り当て
		if errors.Is(handled, database.ErrConflict) {
			return apperror.NewConflictError(authz.ErrAlreadyAssigned.Error())
		}
		return handled
	}
	return nil
}

// Save はロール割り当てを更新します
func (r *AssignmentRepository) Save(ctx context.Context, assignment *authz.RoleAssignment) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		UPDATE role_assignments
		SET status = $2, effective_at = $3, expires_at = $4, assigned_by = $5, reason = $6,
		    updated_at = $7, is_deleted = $8
		WHERE id = $1`,
		assignment.ID, assignment.Status.String(), assignment.EffectiveAt, assignment.ExpiresAt,
		assignment.AssignedBy, assignment.Reason, assignment.Audit.UpdatedAt, assignment.Audit.Deleted,
	)
	return r.HandleError(err)
}

// FindByUserAndRole はユーザーとロールで割り当てを検索します
// 再割り当て判定に使うため、論理削除済み以外の全ステータスを対象とする
func (r *AssignmentRepository) FindByUserAndRole(ctx context.Context, userID, roleID uuid.UUID) (*authz.RoleAssignment, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM role_assignments
		WHERE user_id = $1 AND role_id = $2 AND is_deleted = false`, userID, roleID)

	assignment, err := r.scanAssignment(row)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.NewNotFoundError("role assignment")
		}
		return nil, err
	}
	return assignment, nil
}

// FindValid は有効な割り当てを割り当て日時の昇順で返します
// 期限切れはステータス未遷移でもここで除外される
func (r *AssignmentRepository) FindValid(ctx context.Context, userID uuid.UUID, now time.Time) ([]*authz.RoleAssignment, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM role_assignments
		WHERE user_id = $1
		  AND status = 'active'
		  AND effective_at <= $2
		  AND (expires_at IS NULL OR expires_at > $2)
		  AND is_deleted = false
		ORDER BY created_at, id`, userID, now)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var assignments []*authz.RoleAssignment
	for rows.Next() {
		assignment, err := r.scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, r.HandleError(rows.Err())
}

// CountValidByRole はロールの現に有効な割り当て数を返します
// FindValidと同じ述語で、掃き出し前の期限切れactive行を除外する
func (r *AssignmentRepository) CountValidByRole(ctx context.Context, roleID uuid.UUID, now time.Time) (int64, error) {
	querier := r.Querier(ctx)

	var count int64
	err := querier.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM role_assignments
		WHERE role_id = $1
		  AND status = 'active'
		  AND effective_at <= $2
		  AND (expires_at IS NULL OR expires_at > $2)
		  AND is_deleted = false`, roleID, now).Scan(&count)
	if err != nil {
		return 0, r.HandleError(err)
	}
	return count, nil
}

// ListActiveUserIDs はロールが有効に割り当てられているユーザーIDを返します
func (r *AssignmentRepository) ListActiveUserIDs(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT DISTINCT user_id
		FROM role_assignments
		WHERE role_id = $1 AND status = 'active' AND is_deleted = false`, roleID)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, r.HandleError(err)
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, r.HandleError(rows.Err())
}

// ExpireDue は期限切れのactive割り当てをexpiredへ一括遷移します
// status条件付きのUPDATEであり、並行実行しても各行は一度だけ遷移する
func (r *AssignmentRepository) ExpireDue(ctx context.Context, now time.Time) (int64, []uuid.UUID, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		UPDATE role_assignments
		SET status = 'expired', updated_at = $1
		WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at <= $1 AND is_deleted = false
		RETURNING user_id`, now)
	if err != nil {
		return 0, nil, r.HandleError(err)
	}
	defer rows.Close()

	return r.collectUserIDs(rows)
}

// ActivateDue は有効開始済みのpending割り当てをactiveへ一括遷移します
func (r *AssignmentRepository) ActivateDue(ctx context.Context, now time.Time) (int64, []uuid.UUID, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		UPDATE role_assignments
		SET status = 'active', updated_at = $1
		WHERE status = 'pending' AND effective_at <= $1
		  AND (expires_at IS NULL OR expires_at > $1) AND is_deleted = false
		RETURNING user_id`, now)
	if err != nil {
		return 0, nil, r.HandleError(err)
	}
	defer rows.Close()

	return r.collectUserIDs(rows)
}

// collectUserIDs は遷移した行の件数と影響ユーザーIDを収集します
// ユーザーIDはキャッシュ無効化のために重複排除して返す
func (r *AssignmentRepository) collectUserIDs(rows pgx.Rows) (int64, []uuid.UUID, error) {
	var count int64
	seen := make(map[uuid.UUID]bool)
	var userIDs []uuid.UUID

	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return 0, nil, r.HandleError(err)
		}
		count++
		if !seen[userID] {
			seen[userID] = true
			userIDs = append(userIDs, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nil, r.HandleError(err)
	}
	return count, userIDs, nil
}

// scanAssignment は行を割り当てエンティティに変換します
func (r *AssignmentRepository) scanAssignment(row pgx.Row) (*authz.RoleAssignment, error) {
	var (
		id, userID, roleID uuid.UUID
		status             string
		effectiveAt        time.Time
		expiresAt          *time.Time
		assignedBy         uuid.UUID
		reason             string
		audit              auditColumns
	)

	if err := row.Scan(&id, &userID, &roleID, &status, &effectiveAt, &expiresAt,
		&assignedBy, &reason, &audit.createdAt, &audit.updatedAt, &audit.deleted); err != nil {
		return nil, r.HandleError(err)
	}

	st, err := authz.NewAssignmentStatus(status)
	if err != nil {
		return nil, err
	}

	return authz.ReconstructRoleAssignment(id, userID, roleID, st, effectiveAt, expiresAt, assignedBy, reason, audit.toAudit()), nil
}

// インターフェースの実装を保証
var _ authz.AssignmentRepository = (*AssignmentRepository)(nil)
