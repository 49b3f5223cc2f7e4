package di

import (
	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/database"
	infraRepo "github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/repository"
	authzcmd "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	authzqry "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/query"
)

// AuthzUseCases はAuthorization関連のUseCaseを保持します
type AuthzUseCases struct {
	// Commands
	CreateRole       *authzcmd.CreateRoleCommand
	UpdateRole       *authzcmd.UpdateRoleCommand
	DeleteRole       *authzcmd.DeleteRoleCommand
	AssignRole       *authzcmd.AssignRoleCommand
	RevokeRole       *authzcmd.RevokeRoleCommand
	SuspendRole      *authzcmd.SuspendRoleCommand
	ActivateRole     *authzcmd.ActivateRoleCommand
	UpdateExpiration *authzcmd.UpdateExpirationCommand
	SweepExpired     *authzcmd.SweepExpiredCommand
	GrantPermission  *authzcmd.GrantPermissionCommand
	DenyPermission   *authzcmd.DenyPermissionCommand
	RevokeGrant      *authzcmd.RevokeGrantCommand

	// Queries
	CheckPermission         *authzqry.CheckPermissionQuery
	CheckResourcePermission *authzqry.CheckResourcePermissionQuery
	EffectivePermissions    *authzqry.EffectivePermissionsQuery
	HighestLevel            *authzqry.HighestLevelQuery
	IsAdmin                 *authzqry.IsAdminQuery
	ListGrants              *authzqry.ListGrantsQuery
}

// AuthzRepositories はAuthorization関連のリポジトリを保持します
type AuthzRepositories struct {
	RoleRepo       authz.RoleRepository
	PermissionRepo authz.PermissionRepository
	AssignmentRepo authz.AssignmentRepository
	GrantRepo      authz.GrantRepository
}

// NewAuthzRepositories は新しいAuthzRepositoriesを作成します
func NewAuthzRepositories(txManager *database.TxManager) *AuthzRepositories {
	return &AuthzRepositories{
		RoleRepo:       infraRepo.NewRoleRepository(txManager),
		PermissionRepo: infraRepo.NewPermissionRepository(txManager),
		AssignmentRepo: infraRepo.NewAssignmentRepository(txManager),
		GrantRepo:      infraRepo.NewGrantRepository(txManager),
	}
}

// NewAuthzUseCases は新しいAuthzUseCasesを作成します
// invalidatorはキャッシュ無効時nilを許容する
func NewAuthzUseCases(
	txManager authz.TransactionManager,
	repos *AuthzRepositories,
	resolver authz.PermissionResolver,
	invalidator authz.PermissionInvalidator,
) *AuthzUseCases {
	return &AuthzUseCases{
		// Commands
		CreateRole:       authzcmd.NewCreateRoleCommand(repos.RoleRepo),
		UpdateRole:       authzcmd.NewUpdateRoleCommand(repos.RoleRepo, repos.AssignmentRepo, invalidator),
		DeleteRole:       authzcmd.NewDeleteRoleCommand(txManager, repos.RoleRepo, repos.AssignmentRepo),
		AssignRole:       authzcmd.NewAssignRoleCommand(repos.RoleRepo, repos.AssignmentRepo, invalidator),
		RevokeRole:       authzcmd.NewRevokeRoleCommand(txManager, repos.RoleRepo, repos.AssignmentRepo, invalidator),
		SuspendRole:      authzcmd.NewSuspendRoleCommand(txManager, repos.RoleRepo, repos.AssignmentRepo, invalidator),
		ActivateRole:     authzcmd.NewActivateRoleCommand(repos.RoleRepo, repos.AssignmentRepo, invalidator),
		UpdateExpiration: authzcmd.NewUpdateExpirationCommand(repos.RoleRepo, repos.AssignmentRepo, invalidator),
		SweepExpired:     authzcmd.NewSweepExpiredCommand(repos.AssignmentRepo, invalidator),
		GrantPermission:  authzcmd.NewGrantPermissionCommand(repos.PermissionRepo, repos.GrantRepo, invalidator),
		DenyPermission:   authzcmd.NewDenyPermissionCommand(repos.PermissionRepo, repos.GrantRepo, invalidator),
		RevokeGrant:      authzcmd.NewRevokeGrantCommand(repos.GrantRepo, invalidator),

		// Queries
		CheckPermission:         authzqry.NewCheckPermissionQuery(resolver),
		CheckResourcePermission: authzqry.NewCheckResourcePermissionQuery(resolver),
		EffectivePermissions:    authzqry.NewEffectivePermissionsQuery(resolver),
		HighestLevel:            authzqry.NewHighestLevelQuery(resolver),
		IsAdmin:                 authzqry.NewIsAdminQuery(resolver),
		ListGrants:              authzqry.NewListGrantsQuery(repos.GrantRepo),
	}
}
