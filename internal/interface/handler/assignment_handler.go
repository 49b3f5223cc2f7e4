package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/request"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/dto/response"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/presenter"
	authzcmd "github.com/Grom-Hilbert/lyra-sub002/internal/usecase/authz/command"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// AssignmentHandler はロール割り当て関連のHTTPハンドラーです
type AssignmentHandler struct {
	assignRoleCmd       *authzcmd.AssignRoleCommand
	revokeRoleCmd       *authzcmd.RevokeRoleCommand
	suspendRoleCmd      *authzcmd.SuspendRoleCommand
	activateRoleCmd     *authzcmd.ActivateRoleCommand
	updateExpirationCmd *authzcmd.UpdateExpirationCommand
	sweepExpiredCmd     *authzcmd.SweepExpiredCommand
}

// NewAssignmentHandler は新しいAssignmentHandlerを作成します
func NewAssignmentHandler(
	assignRoleCmd *authzcmd.AssignRoleCommand,
	revokeRoleCmd *authzcmd.RevokeRoleCommand,
	suspendRoleCmd *authzcmd.SuspendRoleCommand,
	activateRoleCmd *authzcmd.ActivateRoleCommand,
	updateExpirationCmd *authzcmd.UpdateExpirationCommand,
	sweepExpiredCmd *authzcmd.SweepExpiredCommand,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignRoleCmd:       assignRoleCmd,
		revokeRoleCmd:       revokeRoleCmd,
		suspendRoleCmd:      suspendRoleCmd,
		activateRoleCmd:     activateRoleCmd,
		updateExpirationCmd: updateExpirationCmd,
		sweepExpiredCmd:     sweepExpiredCmd,
	}
}

// AssignRole はユーザーにロールを割り当てます
// POST /users/:id/roles
func (h *AssignmentHandler) AssignRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	var req request.AssignRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assignedBy, err := uuid.Parse(req.AssignedBy)
	if err != nil {
		return apperror.NewValidationError("invalid assigner ID", nil)
	}

	output, err := h.assignRoleCmd.Execute(c.Request().Context(), authzcmd.AssignRoleInput{
		UserID:     userID,
		RoleCode:   req.RoleCode,
		AssignedBy: assignedBy,
		Reason:     req.Reason,
		ExpiresAt:  req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToAssignmentResponse(output.Assignment))
}

// RevokeRole はユーザーのロール割り当てを取り消します
// DELETE /users/:id/roles/:roleCode
func (h *AssignmentHandler) RevokeRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	if err := h.revokeRoleCmd.Execute(c.Request().Context(), authzcmd.RevokeRoleInput{
		UserID:   userID,
		RoleCode: c.Param("roleCode"),
		Reason:   c.QueryParam("reason"),
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// SuspendRole はユーザーのロール割り当てを一時停止します
// POST /users/:id/roles/:roleCode/suspend
func (h *AssignmentHandler) SuspendRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	var req request.SuspendRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.suspendRoleCmd.Execute(c.Request().Context(), authzcmd.SuspendRoleInput{
		UserID:   userID,
		RoleCode: c.Param("roleCode"),
		Reason:   req.Reason,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// ActivateRole は一時停止中・開始待ちのロール割り当てを有効化します
// POST /users/:id/roles/:roleCode/activate
func (h *AssignmentHandler) ActivateRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	if err := h.activateRoleCmd.Execute(c.Request().Context(), authzcmd.ActivateRoleInput{
		UserID:   userID,
		RoleCode: c.Param("roleCode"),
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// UpdateExpiration はロール割り当ての有効期限を変更します
// PUT /users/:id/roles/:roleCode/expiration
func (h *AssignmentHandler) UpdateExpiration(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	var req request.UpdateExpirationRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}

	if err := h.updateExpirationCmd.Execute(c.Request().Context(), authzcmd.UpdateExpirationInput{
		UserID:    userID,
		RoleCode:  c.Param("roleCode"),
		ExpiresAt: req.ExpiresAt,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// Sweep は時限割り当ての掃き出しを即時実行します
// 定期ジョブと同じ処理を運用から手動で起動するためのエンドポイント
// POST /authz/sweep
func (h *AssignmentHandler) Sweep(c echo.Context) error {
	output, err := h.sweepExpiredCmd.Execute(c.Request().Context())
	if err != nil {
		return err
	}

	return presenter.OK(c, response.SweepResponse{
		Expired:   output.Expired,
		Activated: output.Activated,
	})
}
