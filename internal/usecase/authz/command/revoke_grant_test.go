package command_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
	"github.com/Grom-Hilbert/lyra-sub002/tests/testutil/mocks"
)

type revokeGrantTestDeps struct {
	grantRepo   *mocks.MockGrantRepository
	invalidator *mocks.MockPermissionInvalidator
}

func newRevokeGrantTestDeps(t *testing.T) *revokeGrantTestDeps {
	t.Helper()
	return &revokeGrantTestDeps{
		grantRepo:   mocks.NewMockGrantRepository(t),
		invalidator: mocks.NewMockPermissionInvalidator(t),
	}
}

func (d *revokeGrantTestDeps) newCommand() *command.RevokeGrantCommand {
	return command.NewRevokeGrantCommand(d.grantRepo, d.invalidator)
}

func TestRevokeGrantCommand_Execute_Revoked(t *testing.T) {
	ctx := context.Background()
	deps := newRevokeGrantTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()
	fileID := uuid.New()
	grant := authz.NewGrant(userID, spaceID, uuid.New(), authz.ResourceTypeFile, &fileID,
		authz.GrantStatusGranted, authz.GrantTypeDirect,
		authz.BuildPermissionPath(spaceID, "", &fileID), nil)

	input := command.RevokeGrantInput{
		GrantID: grant.ID,
		Remark:  "access review",
	}

	deps.grantRepo.On("FindByID", ctx, grant.ID).Return(grant, nil)
	deps.grantRepo.On("Save", ctx, grant).Return(nil)
	deps.invalidator.On("InvalidateUser", ctx, userID).Return(nil)

	cmd := deps.newCommand()
	err := cmd.Execute(ctx, input)

	require.NoError(t, err)
	assert.True(t, grant.Audit.IsDeleted())
	assert.Equal(t, "access review", grant.Remark)
}

func TestRevokeGrantCommand_Execute_NotFound_ReturnsError(t *testing.T) {
	ctx := context.Background()
	deps := newRevokeGrantTestDeps(t)

	grantID := uuid.New()
	input := command.RevokeGrantInput{GrantID: grantID}

	deps.grantRepo.On("FindByID", ctx, grantID).
		Return(nil, apperror.NewNotFoundError("grant"))

	cmd := deps.newCommand()
	err := cmd.Execute(ctx, input)

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRevokeGrantCommand_Execute_InvalidationFailure_DoesNotFail(t *testing.T) {
	ctx := context.Background()
	deps := newRevokeGrantTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()
	grant := authz.NewGrant(userID, spaceID, uuid.New(), authz.ResourceTypeSpace, nil,
		authz.GrantStatusGranted, authz.GrantTypeDirect, authz.SpacePath(spaceID), nil)

	input := command.RevokeGrantInput{GrantID: grant.ID}

	deps.grantRepo.On("FindByID", ctx, grant.ID).Return(grant, nil)
	deps.grantRepo.On("Save", ctx, grant).Return(nil)
	deps.invalidator.On("InvalidateUser", ctx, userID).
		Return(apperror.NewServiceUnavailableError("cache is unavailable"))

	cmd := deps.newCommand()
	err := cmd.Execute(ctx, input)

	// ストアへの書き込みが確定した後の無効化失敗はコマンドを失敗させない
	require.NoError(t, err)
}
