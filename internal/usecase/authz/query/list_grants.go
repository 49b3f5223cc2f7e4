package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// ListGrantsInput は授権一覧の入力を定義します
type ListGrantsInput struct {
	UserID  uuid.UUID
	SpaceID uuid.UUID
}

// ListGrantsOutput は授権一覧の出力を定義します
type ListGrantsOutput struct {
	Grants []*authz.Grant
}

// ListGrantsQuery はユーザーの空間内の授権一覧を取得するクエリです
type ListGrantsQuery struct {
	grantRepo authz.GrantRepository
}

// NewListGrantsQuery は新しいListGrantsQueryを作成します
func NewListGrantsQuery(grantRepo authz.GrantRepository) *ListGrantsQuery {
	return &ListGrantsQuery{grantRepo: grantRepo}
}

// Execute は授権一覧の取得を実行します
func (q *ListGrantsQuery) Execute(ctx context.Context, input ListGrantsInput) (*ListGrantsOutput, error) {
	grants, err := q.grantRepo.ListByUserAndSpace(ctx, input.UserID, input.SpaceID)
	if err != nil {
		return nil, err
	}
	return &ListGrantsOutput{Grants: grants}, nil
}
