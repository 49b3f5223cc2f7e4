package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
	"github.com/Grom-Hilbert/lyra-sub002/tests/testutil/mocks"
)

type updateRoleTestDeps struct {
	roleRepo       *mocks.MockRoleRepository
	assignmentRepo *mocks.MockAssignmentRepository
	invalidator    *mocks.MockPermissionInvalidator
}

func newUpdateRoleTestDeps(t *testing.T) *updateRoleTestDeps {
	t.Helper()
	return &updateRoleTestDeps{
		roleRepo:       mocks.NewMockRoleRepository(t),
		assignmentRepo: mocks.NewMockAssignmentRepository(t),
		invalidator:    mocks.NewMockPermissionInvalidator(t),
	}
}

func (d *updateRoleTestDeps) newCommand() *command.UpdateRoleCommand {
	return command.NewUpdateRoleCommand(d.roleRepo, d.assignmentRepo, d.invalidator)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestUpdateRoleCommand_Execute_RenameAndDisable(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateRoleTestDeps(t)

	role := authz.NewRole("EDITOR", "Editor", authz.RoleTypeUser)
	affected := []uuid.UUID{uuid.New(), uuid.New()}

	input := command.UpdateRoleInput{
		Code:    "EDITOR",
		Name:    strPtr("Senior Editor"),
		Enabled: boolPtr(false),
	}

	deps.roleRepo.On("FindByCode", ctx, "EDITOR").Return(role, nil)
	deps.roleRepo.On("Save", ctx, role).Return(nil)
	deps.assignmentRepo.On("ListActiveUserIDs", ctx, role.ID).Return(affected, nil)
	deps.invalidator.On("InvalidateUser", ctx, affected[0]).Return(nil)
	deps.invalidator.On("InvalidateUser", ctx, affected[1]).Return(nil)

	cmd := deps.newCommand()
	err := cmd.Execute(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Senior Editor", role.Name)
	assert.False(t, role.Enabled)
}

func TestUpdateRoleCommand_Execute_SystemRole_ReturnsForbidden(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateRoleTestDeps(t)

	role := authz.NewSystemRole(authz.RoleCodeAdmin, "Administrator", authz.RoleTypeAdmin)

	input := command.UpdateRoleInput{
		Code: authz.RoleCodeAdmin,
		Name: strPtr("Root"),
	}

	deps.roleRepo.On("FindByCode", ctx, authz.RoleCodeAdmin).Return(role, nil)

	cmd := deps.newCommand()
	err := cmd.Execute(ctx, input)

	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	assert.Equal(t, "Administrator", role.Name)
}

func TestUpdateRoleCommand_Execute_NoActiveAssignments_NoInvalidation(t *testing.T) {
	ctx := context.Background()
	deps := newUpdateRoleTestDeps(t)

	role := authz.NewRole("EDITOR", "Editor", authz.RoleTypeUser)

	input := command.UpdateRoleInput{
		Code: "EDITOR",
		Name: strPtr("Copy Editor"),
	}

	deps.roleRepo.On("FindByCode", ctx, "EDITOR").Return(role, nil)
	deps.roleRepo.On("Save", ctx, role).Return(nil)
	deps.assignmentRepo.On("ListActiveUserIDs", ctx, role.ID).Return(nil, nil)

	cmd := deps.newCommand()
	err := cmd.Execute(ctx, input)

	require.NoError(t, err)
}
