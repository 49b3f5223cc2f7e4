package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
)

// MockPermissionResolver is a mock of authz.PermissionResolver
type MockPermissionResolver struct {
	mock.Mock
}

func NewMockPermissionResolver(t *testing.T) *MockPermissionResolver {
	m := &MockPermissionResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPermissionResolver) EffectivePermissions(ctx context.Context, userID uuid.UUID) (*authz.PermissionSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.PermissionSet), args.Error(1)
}

func (m *MockPermissionResolver) HasPermission(ctx context.Context, userID uuid.UUID, permissionCode string) (bool, error) {
	args := m.Called(ctx, userID, permissionCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionResolver) HasResourcePermission(ctx context.Context, userID, spaceID uuid.UUID, resourceType authz.ResourceType, resourceID *uuid.UUID, permissionCode string) (bool, error) {
	args := m.Called(ctx, userID, spaceID, resourceType, resourceID, permissionCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionResolver) HighestLevel(ctx context.Context, userID uuid.UUID, resourceType authz.ResourceType) (int, error) {
	args := m.Called(ctx, userID, resourceType)
	return args.Int(0), args.Error(1)
}

func (m *MockPermissionResolver) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockPermissionInvalidator is a mock of authz.PermissionInvalidator
type MockPermissionInvalidator struct {
	mock.Mock
}

func NewMockPermissionInvalidator(t *testing.T) *MockPermissionInvalidator {
	m := &MockPermissionInvalidator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPermissionInvalidator) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
