package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/request"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/response"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/presenter"
	authzcmd "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// RoleHandler はロール管理関連のHTTPハンドラーです
type RoleHandler struct {
	createRoleCmd *authzcmd.CreateRoleCommand
	updateRoleCmd *authzcmd.UpdateRoleCommand
	deleteRoleCmd *authzcmd.DeleteRoleCommand
}

// NewRoleHandler は新しいRoleHandlerを作成します
func NewRoleHandler(
	createRoleCmd *authzcmd.CreateRoleCommand,
	updateRoleCmd *authzcmd.UpdateRoleCommand,
	deleteRoleCmd *authzcmd.DeleteRoleCommand,
) *RoleHandler {
	return &RoleHandler{
		createRoleCmd: createRoleCmd,
		updateRoleCmd: updateRoleCmd,
		deleteRoleCmd: deleteRoleCmd,
	}
}

// CreateRole はロールを作成します
// POST /roles
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req request.CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.createRoleCmd.Execute(c.Request().Context(), authzcmd.CreateRoleInput{
		Code: req.Code,
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToRoleResponse(output.Role))
}

// UpdateRole はロールの名称・有効状態を変更します
// PATCH /roles/:code
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return apperror.NewValidationError("role code is required", nil)
	}

	var req request.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.updateRoleCmd.Execute(c.Request().Context(), authzcmd.UpdateRoleInput{
		Code:    code,
		Name:    req.Name,
		Enabled: req.Enabled,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// DeleteRole はロールを論理削除します
// DELETE /roles/:code
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return apperror.NewValidationError("role code is required", nil)
	}

	if err := h.deleteRoleCmd.Execute(c.Request().Context(), authzcmd.DeleteRoleInput{
		Code: code,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}
