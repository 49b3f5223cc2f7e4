package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// MockAssignmentRepository is a mock of authz.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func NewMockAssignmentRepository(t *testing.T) *MockAssignmentRepository {
	m := &MockAssignmentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *authz.RoleAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *authz.RoleAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByUserAndRole(ctx context.Context, userID, roleID uuid.UUID) (*authz.RoleAssignment, error) {
	args := m.Called(ctx, userID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.RoleAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindValid(ctx context.Context, userID uuid.UUID, now time.Time) ([]*authz.RoleAssignment, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authz.RoleAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountValidByRole(ctx context.Context, roleID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, roleID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) ListActiveUserIDs(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAssignmentRepository) ExpireDue(ctx context.Context, now time.Time) (int64, []uuid.UUID, error) {
	args := m.Called(ctx, now)
	var userIDs []uuid.UUID
	if args.Get(1) != nil {
		userIDs = args.Get(1).([]uuid.UUID)
	}
	return args.Get(0).(int64), userIDs, args.Error(2)
}

func (m *MockAssignmentRepository) ActivateDue(ctx context.Context, now time.Time) (int64, []uuid.UUID, error) {
	args := m.Called(ctx, now)
	var userIDs []uuid.UUID
	if args.Get(1) != nil {
		userIDs = args.Get(1).([]uuid.UUID)
	}
	return args.Get(0).(int64), userIDs, args.Error(2)
}
