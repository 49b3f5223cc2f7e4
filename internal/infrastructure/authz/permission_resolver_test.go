package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	infraAuthz "github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/authz"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
	"github.com/Grom-Hilbert/lyra-sub002/tests/testutil/mocks"
)

type resolverTestDeps struct {
	assignmentRepo *mocks.MockAssignmentRepository
	roleRepo       *mocks.MockRoleRepository
	permissionRepo *mocks.MockPermissionRepository
	grantRepo      *mocks.MockGrantRepository
}

func newResolverTestDeps(t *testing.T) *resolverTestDeps {
	t.Helper()
	return &resolverTestDeps{
		assignmentRepo: mocks.NewMockAssignmentRepository(t),
		roleRepo:       mocks.NewMockRoleRepository(t),
		permissionRepo: mocks.NewMockPermissionRepository(t),
		grantRepo:      mocks.NewMockGrantRepository(t),
	}
}

func (d *resolverTestDeps) newResolver() *infraAuthz.PermissionResolverImpl {
	return infraAuthz.NewPermissionResolver(d.assignmentRepo, d.roleRepo, d.permissionRepo, d.grantRepo)
}

func newRoleWithPermission(t *testing.T, roleCode, permCode string, resourceType authz.ResourceType, category string, level int) *authz.Role {
	t.Helper()
	perm, err := authz.NewPermission(permCode, permCode, resourceType, category, level)
	require.NoError(t, err)
	role := authz.NewRole(roleCode, roleCode, authz.RoleTypeUser)
	role.Permissions = []*authz.Permission{perm}
	return role
}

func (d *resolverTestDeps) expectValidRoles(ctx context.Context, userID uuid.UUID, roles ...*authz.Role) {
	assignments := make([]*authz.RoleAssignment, 0, len(roles))
	for _, role := range roles {
		assignments = append(assignments, authz.NewRoleAssignment(userID, role.ID, uuid.New(), "test", nil))
		d.roleRepo.On("FindByID", ctx, role.ID).Return(role, nil)
	}
	d.assignmentRepo.On("FindValid", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(assignments, nil)
}

func TestPermissionResolver_HasPermission_FromAssignedRole(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	role := newRoleWithPermission(t, "EDITOR", "file.write", authz.ResourceTypeFile, "write", 60)
	deps.expectValidRoles(ctx, userID, role)

	resolver := deps.newResolver()
	allowed, err := resolver.HasPermission(ctx, userID, "file.write")

	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPermissionResolver_HasPermission_NoRoles_NotAllowed(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	deps.assignmentRepo.On("FindValid", ctx, userID, mock.AnythingOfType("time.Time")).
		Return([]*authz.RoleAssignment{}, nil)

	resolver := deps.newResolver()
	allowed, err := resolver.HasPermission(ctx, userID, "file.write")

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionResolver_HasPermission_DeletedRoleSkipped(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	roleID := uuid.New()
	assignment := authz.NewRoleAssignment(userID, roleID, uuid.New(), "stale", nil)

	deps.assignmentRepo.On("FindValid", ctx, userID, mock.AnythingOfType("time.Time")).
		Return([]*authz.RoleAssignment{assignment}, nil)
	deps.roleRepo.On("FindByID", ctx, roleID).Return(nil, apperror.NewNotFoundError("role"))

	resolver := deps.newResolver()
	allowed, err := resolver.HasPermission(ctx, userID, "file.write")

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionResolver_HasResourcePermission_GrantWinnerDecides(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()
	fileID := uuid.New()
	role := newRoleWithPermission(t, "EDITOR", "file.read", authz.ResourceTypeFile, "read", 30)
	perm := role.Permissions[0]
	path := authz.BuildPermissionPath(spaceID, "", &fileID)

	grant := authz.NewGrant(userID, spaceID, perm.ID, authz.ResourceTypeFile, &fileID,
		authz.GrantStatusGranted, authz.GrantTypeDirect, path, nil)

	deps.permissionRepo.On("FindByCode", ctx, "file.read").Return(perm, nil)
	deps.expectValidRoles(ctx, userID, role)
	deps.grantRepo.On("FindResourcePath", ctx, spaceID, authz.ResourceTypeFile, fileID).
		Return(path, nil)
	deps.grantRepo.On("FindApplicable", ctx, userID, []uuid.UUID{role.ID}, spaceID, authz.ResourceTypeFile, &fileID, path).
		Return([]*authz.Grant{grant}, nil)

	resolver := deps.newResolver()
	allowed, err := resolver.HasResourcePermission(ctx, userID, spaceID, authz.ResourceTypeFile, &fileID, "file.read")

	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPermissionResolver_HasResourcePermission_DenyOverridesRolePermission(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()
	fileID := uuid.New()
	role := newRoleWithPermission(t, "EDITOR", "file.read", authz.ResourceTypeFile, "read", 30)
	perm := role.Permissions[0]
	path := authz.BuildPermissionPath(spaceID, "", &fileID)

	deny := authz.NewGrant(userID, spaceID, perm.ID, authz.ResourceTypeFile, &fileID,
		authz.GrantStatusDenied, authz.GrantTypeDirect, path, nil)

	deps.permissionRepo.On("FindByCode", ctx, "file.read").Return(perm, nil)
	deps.expectValidRoles(ctx, userID, role)
	deps.grantRepo.On("FindResourcePath", ctx, spaceID, authz.ResourceTypeFile, fileID).
		Return(path, nil)
	deps.grantRepo.On("FindApplicable", ctx, userID, []uuid.UUID{role.ID}, spaceID, authz.ResourceTypeFile, &fileID, path).
		Return([]*authz.Grant{deny}, nil)

	resolver := deps.newResolver()
	allowed, err := resolver.HasResourcePermission(ctx, userID, spaceID, authz.ResourceTypeFile, &fileID, "file.read")

	require.NoError(t, err)
	assert.False(t, allowed, "explicit deny must override role-derived permission")
}

func TestPermissionResolver_HasResourcePermission_NoGrants_FallsBackToRoles(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()
	fileID := uuid.New()
	role := newRoleWithPermission(t, "EDITOR", "file.read", authz.ResourceTypeFile, "read", 30)
	perm := role.Permissions[0]
	path := authz.BuildPermissionPath(spaceID, "", &fileID)

	deps.permissionRepo.On("FindByCode", ctx, "file.read").Return(perm, nil)
	deps.expectValidRoles(ctx, userID, role)
	deps.grantRepo.On("FindResourcePath", ctx, spaceID, authz.ResourceTypeFile, fileID).
		Return(path, nil)
	deps.grantRepo.On("FindApplicable", ctx, userID, []uuid.UUID{role.ID}, spaceID, authz.ResourceTypeFile, &fileID, path).
		Return([]*authz.Grant{}, nil)

	resolver := deps.newResolver()
	allowed, err := resolver.HasResourcePermission(ctx, userID, spaceID, authz.ResourceTypeFile, &fileID, "file.read")

	require.NoError(t, err)
	assert.True(t, allowed, "role permission should act as the space-wide default")
}

func TestPermissionResolver_HasResourcePermission_UnknownCode_NotAllowed(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()

	deps.permissionRepo.On("FindByCode", ctx, "file.teleport").
		Return(nil, apperror.NewNotFoundError("permission"))

	resolver := deps.newResolver()
	allowed, err := resolver.HasResourcePermission(ctx, userID, spaceID, authz.ResourceTypeSpace, nil, "file.teleport")

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionResolver_HasResourcePermission_DisabledCode_NotAllowed(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()
	perm, err := authz.NewPermission("file.read", "Read file", authz.ResourceTypeFile, "read", 30)
	require.NoError(t, err)
	perm.Enabled = false

	deps.permissionRepo.On("FindByCode", ctx, "file.read").Return(perm, nil)

	resolver := deps.newResolver()
	allowed, err := resolver.HasResourcePermission(ctx, userID, spaceID, authz.ResourceTypeSpace, nil, "file.read")

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionResolver_HasResourcePermission_StoreError_Propagated(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	spaceID := uuid.New()

	deps.permissionRepo.On("FindByCode", ctx, "file.read").
		Return(nil, apperror.NewServiceUnavailableError("database is unavailable"))

	resolver := deps.newResolver()
	allowed, err := resolver.HasResourcePermission(ctx, userID, spaceID, authz.ResourceTypeSpace, nil, "file.read")

	// ストア障害は拒否ではなくエラーとして伝播する
	require.Error(t, err)
	assert.False(t, allowed)
}

func TestPermissionResolver_HighestLevel_PicksWinnerLevel(t *testing.T) {
	ctx := context.Background()
	deps := newResolverTestDeps(t)

	userID := uuid.New()
	viewer := newRoleWithPermission(t, "VIEWER", "file.read", authz.ResourceTypeFile, "read", 30)
	editor := newRoleWithPermission(t, "EDITOR", "file.write", authz.ResourceTypeFile, "write", 60)
	deps.expectValidRoles(ctx, userID, viewer, editor)

	resolver := deps.newResolver()
	level, err := resolver.HighestLevel(ctx, userID, authz.ResourceTypeFile)

	require.NoError(t, err)
	assert.Equal(t, 60, level)
}

func TestPermissionResolver_IsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin role assigned", func(t *testing.T) {
		deps := newResolverTestDeps(t)
		userID := uuid.New()
		admin := authz.NewSystemRole(authz.RoleCodeAdmin, "Administrator", authz.RoleTypeAdmin)
		deps.expectValidRoles(ctx, userID, admin)

		resolver := deps.newResolver()
		isAdmin, err := resolver.IsAdmin(ctx, userID)

		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("only user roles", func(t *testing.T) {
		deps := newResolverTestDeps(t)
		userID := uuid.New()
		editor := newRoleWithPermission(t, "EDITOR", "file.write", authz.ResourceTypeFile, "write", 60)
		deps.expectValidRoles(ctx, userID, editor)

		resolver := deps.newResolver()
		isAdmin, err := resolver.IsAdmin(ctx, userID)

		require.NoError(t, err)
		assert.False(t, isAdmin)
	})
}
