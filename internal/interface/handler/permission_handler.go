package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/request"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/response"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/presenter"
	authzqry "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/query"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// PermissionHandler は権限判定・照会関連のHTTPハンドラーです
type PermissionHandler struct {
	checkPermissionQuery         *authzqry.CheckPermissionQuery
	checkResourcePermissionQuery *authzqry.CheckResourcePermissionQuery
	effectivePermissionsQuery    *authzqry.EffectivePermissionsQuery
	highestLevelQuery            *authzqry.HighestLevelQuery
	isAdminQuery                 *authzqry.IsAdminQuery
}

// NewPermissionHandler は新しいPermissionHandlerを作成します
func NewPermissionHandler(
	checkPermissionQuery *authzqry.CheckPermissionQuery,
	checkResourcePermissionQuery *authzqry.CheckResourcePermissionQuery,
	effectivePermissionsQuery *authzqry.EffectivePermissionsQuery,
	highestLevelQuery *authzqry.HighestLevelQuery,
	isAdminQuery *authzqry.IsAdminQuery,
) *PermissionHandler {
	return &PermissionHandler{
		checkPermissionQuery:         checkPermissionQuery,
		checkResourcePermissionQuery: checkResourcePermissionQuery,
		effectivePermissionsQuery:    effectivePermissionsQuery,
		highestLevelQuery:            highestLevelQuery,
		isAdminQuery:                 isAdminQuery,
	}
}

// CheckPermission はリソース文脈を持たない権限確認を実行します
// POST /authz/check
func (h *PermissionHandler) CheckPermission(c echo.Context) error {
	var req request.CheckPermissionRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	output, err := h.checkPermissionQuery.Execute(c.Request().Context(), authzqry.CheckPermissionInput{
		UserID:         userID,
		PermissionCode: req.PermissionCode,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.CheckPermissionResponse{Allowed: output.Allowed})
}

// CheckResourcePermission はリソース単位の権限確認を実行します
// POST /authz/check-resource
func (h *PermissionHandler) CheckResourcePermission(c echo.Context) error {
	var req request.CheckResourcePermissionRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}
	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return apperror.NewValidationError("invalid space ID", nil)
	}

	var resourceID *uuid.UUID
	if req.ResourceID != nil {
		id, err := uuid.Parse(*req.ResourceID)
		if err != nil {
			return apperror.NewValidationError("invalid resource ID", nil)
		}
		resourceID = &id
	}

	output, err := h.checkResourcePermissionQuery.Execute(c.Request().Context(), authzqry.CheckResourcePermissionInput{
		UserID:         userID,
		SpaceID:        spaceID,
		ResourceType:   req.ResourceType,
		ResourceID:     resourceID,
		PermissionCode: req.PermissionCode,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.CheckPermissionResponse{Allowed: output.Allowed})
}

// GetEffectivePermissions はユーザーの有効権限一覧を取得します
// GET /users/:id/permissions
func (h *PermissionHandler) GetEffectivePermissions(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	output, err := h.effectivePermissionsQuery.Execute(c.Request().Context(), authzqry.EffectivePermissionsInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToEffectivePermissionsResponse(output.Permissions))
}

// GetHighestLevel は指定リソースタイプでの最高権限レベルを取得します
// GET /users/:id/levels/:resourceType
func (h *PermissionHandler) GetHighestLevel(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	resourceType := c.Param("resourceType")

	output, err := h.highestLevelQuery.Execute(c.Request().Context(), authzqry.HighestLevelInput{
		UserID:       userID,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.HighestLevelResponse{
		ResourceType: resourceType,
		Level:        output.Level,
	})
}

// GetIsAdmin はユーザーが管理者系ロールを保持しているかを取得します
// GET /users/:id/admin
func (h *PermissionHandler) GetIsAdmin(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	output, err := h.isAdminQuery.Execute(c.Request().Context(), authzqry.IsAdminInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.IsAdminResponse{IsAdmin: output.IsAdmin})
}
