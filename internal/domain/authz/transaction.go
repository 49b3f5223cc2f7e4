package authz

import (
	"context"
)

// TransactionManager はトランザクション管理インターフェースを定義します
// 確認してから書く系のコマンド（管理者フロア確認→取り消しなど）は
// 本インターフェースで確認と書き込みを同一トランザクションに収める
type TransactionManager interface {
	// WithTransaction はトランザクション内で処理を実行します
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
