package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// MockGrantRepository is a mock of authz.GrantRepository
type MockGrantRepository struct {
	mock.Mock
}

func NewMockGrantRepository(t *testing.T) *MockGrantRepository {
	m := &MockGrantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGrantRepository) Create(ctx context.Context, grant *authz.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockGrantRepository) Save(ctx context.Context, grant *authz.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockGrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*authz.Grant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Grant), args.Error(1)
}

func (m *MockGrantRepository) FindByUniqueKey(ctx context.Context, userID, spaceID, permissionID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID) (*authz.Grant, error) {
	args := m.Called(ctx, userID, spaceID, permissionID, resourceType, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Grant), args.Error(1)
}

func (m *MockGrantRepository) FindApplicable(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, path authz.PermissionPath) ([]*authz.Grant, error) {
	args := m.Called(ctx, userID, roleIDs, spaceID, resourceType, resourceID, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authz.Grant), args.Error(1)
}

func (m *MockGrantRepository) FindResourcePath(ctx context.Context, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID uuid.UUID) (authz.PermissionPath, error) {
	args := m.Called(ctx, spaceID, resourceType, resourceID)
	return args.Get(0).(authz.PermissionPath), args.Error(1)
}

func (m *MockGrantRepository) ListByUserAndSpace(ctx context.Context, userID, spaceID uuid.UUID) ([]*authz.Grant, error) {
	args := m.Called(ctx, userID, spaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authz.Grant), args.Error(1)
}

func (m *MockGrantRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
