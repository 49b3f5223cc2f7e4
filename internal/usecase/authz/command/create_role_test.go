package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
	"github.com/Grom-Hilbert/lyra-sub002/tests/testutil/mocks"
)

func TestCreateRoleCommand_Execute_Created(t *testing.T) {
	ctx := context.Background()
	roleRepo := mocks.NewMockRoleRepository(t)

	input := command.CreateRoleInput{
		Code: "AUDITOR",
		Name: "Auditor",
		Type: "user",
	}

	roleRepo.On("Create", ctx, mock.AnythingOfType("*authz.Role")).Return(nil)

	cmd := command.NewCreateRoleCommand(roleRepo)
	output, err := cmd.Execute(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "AUDITOR", output.Role.Code)
	assert.Equal(t, authz.RoleTypeUser, output.Role.Type)
	assert.True(t, output.Role.Enabled)
	assert.False(t, output.Role.System)
}

func TestCreateRoleCommand_Execute_InvalidType_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	roleRepo := mocks.NewMockRoleRepository(t)

	input := command.CreateRoleInput{
		Code: "AUDITOR",
		Name: "Auditor",
		Type: "root",
	}

	cmd := command.NewCreateRoleCommand(roleRepo)
	output, err := cmd.Execute(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
}

func TestCreateRoleCommand_Execute_EmptyCode_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	roleRepo := mocks.NewMockRoleRepository(t)

	input := command.CreateRoleInput{
		Name: "Auditor",
		Type: "user",
	}

	cmd := command.NewCreateRoleCommand(roleRepo)
	output, err := cmd.Execute(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
}

func TestCreateRoleCommand_Execute_DuplicateCode_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	roleRepo := mocks.NewMockRoleRepository(t)

	input := command.CreateRoleInput{
		Code: "AUDITOR",
		Name: "Auditor",
		Type: "user",
	}

	roleRepo.On("Create", ctx, mock.AnythingOfType("*authz.Role")).
		Return(apperror.NewConflictError("role code already exists"))

	cmd := command.NewCreateRoleCommand(roleRepo)
	output, err := cmd.Execute(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}
