package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// MockPermissionRepository is a mock of authz.PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func NewMockPermissionRepository(t *testing.T) *MockPermissionRepository {
	m := &MockPermissionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPermissionRepository) Create(ctx context.Context, permission *authz.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) Save(ctx context.Context, permission *authz.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*authz.Permission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Permission), args.Error(1)
}

func (m *MockPermissionRepository) FindByCode(ctx context.Context, code string) (*authz.Permission, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.Permission), args.Error(1)
}

func (m *MockPermissionRepository) ListByRoleID(ctx context.Context, roleID uuid.UUID) ([]*authz.Permission, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authz.Permission), args.Error(1)
}
