package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/request"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/response"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/presenter"
	authzcmd "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	authzqry "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/query"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// GrantHandler はリソース単位の授権関連のHTTPハンドラーです
type GrantHandler struct {
	grantPermissionCmd *authzcmd.GrantPermissionCommand
	denyPermissionCmd  *authzcmd.DenyPermissionCommand
	revokeGrantCmd     *authzcmd.RevokeGrantCommand
	listGrantsQuery    *authzqry.ListGrantsQuery
}

// NewGrantHandler は新しいGrantHandlerを作成します
func NewGrantHandler(
	grantPermissionCmd *authzcmd.GrantPermissionCommand,
	denyPermissionCmd *authzcmd.DenyPermissionCommand,
	revokeGrantCmd *authzcmd.RevokeGrantCommand,
	listGrantsQuery *authzqry.ListGrantsQuery,
) *GrantHandler {
	return &GrantHandler{
		grantPermissionCmd: grantPermissionCmd,
		denyPermissionCmd:  denyPermissionCmd,
		revokeGrantCmd:     revokeGrantCmd,
		listGrantsQuery:    listGrantsQuery,
	}
}

// GrantPermission はリソース単位の授権を作成・更新します
// POST /grants
func (h *GrantHandler) GrantPermission(c echo.Context) error {
	var req request.GrantPermissionRequest
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
	grantedBy, err := uuid.Parse(req.GrantedBy)
	if err != nil {
		return apperror.NewValidationError("invalid granter ID", nil)
	}

	var roleID *uuid.UUID
	if req.RoleID != nil {
		id, err := uuid.Parse(*req.RoleID)
		if err != nil {
			return apperror.NewValidationError("invalid role ID", nil)
		}
		roleID = &id
	}

	var resourceID *uuid.UUID
	if req.ResourceID != nil {
		id, err := uuid.Parse(*req.ResourceID)
		if err != nil {
			return apperror.NewValidationError("invalid resource ID", nil)
		}
		resourceID = &id
	}

	output, err := h.grantPermissionCmd.Execute(c.Request().Context(), authzcmd.GrantPermissionInput{
		UserID:         userID,
		RoleID:         roleID,
		SpaceID:        spaceID,
		PermissionCode: req.PermissionCode,
		ResourceType:   req.ResourceType,
		ResourceID:     resourceID,
		ParentPath:     req.ParentPath,
		Level:          req.Level,
		GrantedBy:      grantedBy,
		ExpiresAt:      req.ExpiresAt,
		Remark:         req.Remark,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToGrantResponse(output.Grant))
}

// DenyPermission はリソース単位の明示的拒否を記録します
// POST /grants/deny
func (h *GrantHandler) DenyPermission(c echo.Context) error {
	var req request.DenyPermissionRequest
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
	deniedBy, err := uuid.Parse(req.DeniedBy)
	if err != nil {
		return apperror.NewValidationError("invalid denier ID", nil)
	}

	var resourceID *uuid.UUID
	if req.ResourceID != nil {
		id, err := uuid.Parse(*req.ResourceID)
		if err != nil {
			return apperror.NewValidationError("invalid resource ID", nil)
		}
		resourceID = &id
	}

	output, err := h.denyPermissionCmd.Execute(c.Request().Context(), authzcmd.DenyPermissionInput{
		UserID:         userID,
		SpaceID:        spaceID,
		PermissionCode: req.PermissionCode,
		ResourceType:   req.ResourceType,
		ResourceID:     resourceID,
		ParentPath:     req.ParentPath,
		DeniedBy:       deniedBy,
		Remark:         req.Remark,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToGrantResponse(output.Grant))
}

// RevokeGrant は授権を取り消します
// DELETE /grants/:id
func (h *GrantHandler) RevokeGrant(c echo.Context) error {
	grantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid grant ID", nil)
	}

	if err := h.revokeGrantCmd.Execute(c.Request().Context(), authzcmd.RevokeGrantInput{
		GrantID: grantID,
		Remark:  c.QueryParam("remark"),
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// ListGrants はユーザーの空間内の授権一覧を取得します
// GET /users/:id/spaces/:spaceId/grants
func (h *GrantHandler) ListGrants(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}
	spaceID, err := uuid.Parse(c.Param("spaceId"))
	if err != nil {
		return apperror.NewValidationError("invalid space ID", nil)
	}

	output, err := h.listGrantsQuery.Execute(c.Request().Context(), authzqry.ListGrantsInput{
		UserID:  userID,
		SpaceID: spaceID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToGrantListResponse(output.Grants))
}
