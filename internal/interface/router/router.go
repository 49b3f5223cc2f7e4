package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/di"
)

// Router はルート定義を管理します
type Router struct {
	echo     *echo.Echo
	handlers *di.Handlers
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers) *Router {
	return &Router{
		echo:     e,
		handlers: handlers,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	r.setupAuthzRoutes(api)
	r.setupRoleRoutes(api)
	r.setupUserRoutes(api)
	r.setupGrantRoutes(api)
}

// setupAuthzRoutes は権限判定ルートを設定します
func (r *Router) setupAuthzRoutes(api *echo.Group) {
	authzGroup := api.Group("/authz")
	authzGroup.POST("/check", r.handlers.Permission.CheckPermission)
	authzGroup.POST("/check-resource", r.handlers.Permission.CheckResourcePermission)
	authzGroup.POST("/sweep", r.handlers.Assignment.Sweep)
}

// setupRoleRoutes はロール管理ルートを設定します
func (r *Router) setupRoleRoutes(api *echo.Group) {
	rolesGroup := api.Group("/roles")
	rolesGroup.POST("", r.handlers.Role.CreateRole)
	rolesGroup.PATCH("/:code", r.handlers.Role.UpdateRole)
	rolesGroup.DELETE("/:code", r.handlers.Role.DeleteRole)
}

// setupUserRoutes はユーザー単位の割り当て・照会ルートを設定します
func (r *Router) setupUserRoutes(api *echo.Group) {
	usersGroup := api.Group("/users")

	// 照会
	usersGroup.GET("/:id/permissions", r.handlers.Permission.GetEffectivePermissions)
	usersGroup.GET("/:id/admin", r.handlers.Permission.GetIsAdmin)
	usersGroup.GET("/:id/levels/:resourceType", r.handlers.Permission.GetHighestLevel)
	usersGroup.GET("/:id/spaces/:spaceId/grants", r.handlers.Grant.ListGrants)

	// ロール割り当て
	usersGroup.POST("/:id/roles", r.handlers.Assignment.AssignRole)
	usersGroup.DELETE("/:id/roles/:roleCode", r.handlers.Assignment.RevokeRole)
	usersGroup.POST("/:id/roles/:roleCode/suspend", r.handlers.Assignment.SuspendRole)
	usersGroup.POST("/:id/roles/:roleCode/activate", r.handlers.Assignment.ActivateRole)
	usersGroup.PUT("/:id/roles/:roleCode/expiration", r.handlers.Assignment.UpdateExpiration)
}

// setupGrantRoutes はリソース単位の授権ルートを設定します
func (r *Router) setupGrantRoutes(api *echo.Group) {
	grantsGroup := api.Group("/grants")
	grantsGroup.POST("", r.handlers.Grant.GrantPermission)
	grantsGroup.POST("/deny", r.handlers.Grant.DenyPermission)
	grantsGroup.DELETE("/:id", r.handlers.Grant.RevokeGrant)
}
