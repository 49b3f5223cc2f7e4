package query_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/query"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
	"github.com/Grom-Hilbert/lyra-sub002/tests/testutil/mocks"
)

func TestCheckPermissionQuery_Execute_Allowed(t *testing.T) {
	ctx := context.Background()
	resolver := mocks.NewMockPermissionResolver(t)

	userID := uuid.New()
	resolver.On("HasPermission", ctx, userID, "file.read").Return(true, nil)

	q := query.NewCheckPermissionQuery(resolver)
	output, err := q.Execute(ctx, query.CheckPermissionInput{
		UserID:         userID,
		PermissionCode: "file.read",
	})

	require.NoError(t, err)
	assert.True(t, output.Allowed)
}

func TestCheckPermissionQuery_Execute_UnknownCode_NotAllowed(t *testing.T) {
	ctx := context.Background()
	resolver := mocks.NewMockPermissionResolver(t)

	userID := uuid.New()
	resolver.On("HasPermission", ctx, userID, "file.teleport").Return(false, nil)

	q := query.NewCheckPermissionQuery(resolver)
	output, err := q.Execute(ctx, query.CheckPermissionInput{
		UserID:         userID,
		PermissionCode: "file.teleport",
	})

	require.NoError(t, err)
	assert.False(t, output.Allowed)
}

func TestCheckPermissionQuery_Execute_ResolverError_Propagated(t *testing.T) {
	ctx := context.Background()
	resolver := mocks.NewMockPermissionResolver(t)

	userID := uuid.New()
	resolver.On("HasPermission", ctx, userID, "file.read").
		Return(false, apperror.NewServiceUnavailableError("database is unavailable"))

	q := query.NewCheckPermissionQuery(resolver)
	output, err := q.Execute(ctx, query.CheckPermissionInput{
		UserID:         userID,
		PermissionCode: "file.read",
	})

	// 権限ストアに到達できない場合は拒否ではなくエラーを返す
	require.Error(t, err)
	assert.Nil(t, output)
}
