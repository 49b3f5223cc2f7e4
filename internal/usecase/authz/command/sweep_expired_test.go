package command_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
	"github.com/Grom-Hilbert/lyra-sub002/tests/testutil/mocks"
)

type sweepExpiredTestDeps struct {
	assignmentRepo *mocks.MockAssignmentRepository
	invalidator    *mocks.MockPermissionInvalidator
}

func newSweepExpiredTestDeps(t *testing.T) *sweepExpiredTestDeps {
	t.Helper()
	return &sweepExpiredTestDeps{
		assignmentRepo: mocks.NewMockAssignmentRepository(t),
		invalidator:    mocks.NewMockPermissionInvalidator(t),
	}
}

func (d *sweepExpiredTestDeps) newCommand() *command.SweepExpiredCommand {
	return command.NewSweepExpiredCommand(d.assignmentRepo, d.invalidator)
}

func TestSweepExpiredCommand_Execute_TransitionsAndInvalidates(t *testing.T) {
	ctx := context.Background()
	deps := newSweepExpiredTestDeps(t)

	expiredUser := uuid.New()
	activatedUser := uuid.New()

	deps.assignmentRepo.On("ExpireDue", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(1), []uuid.UUID{expiredUser}, nil)
	deps.assignmentRepo.On("ActivateDue", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(1), []uuid.UUID{activatedUser}, nil)
	deps.invalidator.On("InvalidateUser", ctx, expiredUser).Return(nil)
	deps.invalidator.On("InvalidateUser", ctx, activatedUser).Return(nil)

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, int64(1), output.Expired)
	assert.Equal(t, int64(1), output.Activated)
}

func TestSweepExpiredCommand_Execute_NothingDue(t *testing.T) {
	ctx := context.Background()
	deps := newSweepExpiredTestDeps(t)

	deps.assignmentRepo.On("ExpireDue", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil, nil)
	deps.assignmentRepo.On("ActivateDue", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil, nil)

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(0), output.Expired)
	assert.Equal(t, int64(0), output.Activated)
}

func TestSweepExpiredCommand_Execute_StoreError_Propagated(t *testing.T) {
	ctx := context.Background()
	deps := newSweepExpiredTestDeps(t)

	deps.assignmentRepo.On("ExpireDue", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil, apperror.NewServiceUnavailableError("database is unavailable"))

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx)

	require.Error(t, err)
	assert.Nil(t, output)
}
