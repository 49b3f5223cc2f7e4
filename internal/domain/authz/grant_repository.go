package authz

import (
	"context"

	"github.com/google/uuid"
)

// GrantRepository は授権レコードリポジトリのインターフェース
// (user_id, space_id, permission_id, resource_type, resource_id) の一意性は
// ストア側の部分一意制約（未削除レコードのみ）で保証される
type GrantRepository interface {
	Create(ctx context.Context, grant *Grant) error
	Save(ctx context.Context, grant *Grant) error
	FindByID(ctx context.Context, id uuid.UUID) (*Grant, error)
	FindByUniqueKey(ctx context.Context, userID, spaceID, permissionID uuid.UUID, resourceType ResourceType, resourceID *uuid.UUID) (*Grant, error)

	// FindApplicable は判定対象リソースに適用されうる授権を取得します
	// 合致条件（いずれか）:
	//   - 授権のリソースが判定対象と一致する
	//   - 授権が空間全体を対象とし、空間が一致する
	//   - 授権が継承可能で、授権パスが対象パスの祖先である
	// ユーザー直接の授権に加え、roleIDsに含まれるロール由来の授権も対象とする
	FindApplicable(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID, spaceID uuid.UUID, resourceType ResourceType, resourceID *uuid.UUID, path PermissionPath) ([]*Grant, error)

	// FindResourcePath は対象リソースへの既存授権が保持する権限パスを返します
	// 実体ツリーを持たないため、パスの復元は授権レコードに依存する
	// 授権が存在しない場合は空パスを返す（エラーではない）
	FindResourcePath(ctx context.Context, spaceID uuid.UUID, resourceType ResourceType, resourceID uuid.UUID) (PermissionPath, error)

	ListByUserAndSpace(ctx context.Context, userID, spaceID uuid.UUID) ([]*Grant, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
