package di

import (
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health     *handler.HealthHandler
	Permission *handler.PermissionHandler
	Role       *handler.RoleHandler
	Assignment *handler.AssignmentHandler
	Grant      *handler.GrantHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	healthHandler := handler.NewHealthHandler()
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}

	permissionHandler := handler.NewPermissionHandler(
		c.Authz.CheckPermission,
		c.Authz.CheckResourcePermission,
		c.Authz.EffectivePermissions,
		c.Authz.HighestLevel,
		c.Authz.IsAdmin,
	)

	roleHandler := handler.NewRoleHandler(
		c.Authz.CreateRole,
		c.Authz.UpdateRole,
		c.Authz.DeleteRole,
	)

	assignmentHandler := handler.NewAssignmentHandler(
		c.Authz.AssignRole,
		c.Authz.RevokeRole,
		c.Authz.SuspendRole,
		c.Authz.ActivateRole,
		c.Authz.UpdateExpiration,
		c.Authz.SweepExpired,
	)

	grantHandler := handler.NewGrantHandler(
		c.Authz.GrantPermission,
		c.Authz.DenyPermission,
		c.Authz.RevokeGrant,
		c.Authz.ListGrants,
	)

	return &Handlers{
		Health:     healthHandler,
		Permission: permissionHandler,
		Role:       roleHandler,
		Assignment: assignmentHandler,
		Grant:      grantHandler,
	}
}
