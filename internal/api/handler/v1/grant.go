package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/request"
	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/response"
	"github.com/salasintercc/expo-admin-api/internal/domain"
)

type AccessService interface {
	Grant(ctx context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error)
	Revoke(ctx context.Context, eventID, userID uint) (domain.ExhibitorAccessGrant, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.ExhibitorAccessGrant, error)
}

type GrantHandler struct {
	svc  AccessService
	uSvc UserService
}

func NewGrantHandler(svc AccessService, uSvc UserService) *GrantHandler {
	return &GrantHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func (h *GrantHandler) requireAdmin(ctx *gin.Context) bool {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return false
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return false
	}

	return true
}

// HandleGrantAccess godoc
// @Summary      Grant wizard access to an exhibitor
// @Description  Enables stand configuration for the (event, user) pair. Granting twice is a no-op. Admin only.
// @Tags         grants
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "event ID"
// @Param        input    body      request.GrantAccessRequest  true  "exhibitor to grant"
// @Success      201      {object}  domain.ExhibitorAccessGrant
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/grants [post]
// @Security     BearerAuth
func (h *GrantHandler) HandleGrantAccess(ctx *gin.Context) {
	if !h.requireAdmin(ctx) {
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.GrantAccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	grant, err := h.svc.Grant(ctx.Request.Context(), eventID, req.UserID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGrantAccess -> h.svc.Grant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, grant)
}

// HandleRevokeAccess godoc
// @Summary      Revoke wizard access from an exhibitor
// @Description  Disables stand configuration but keeps the grant record. Admin only.
// @Tags         grants
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Param        userID   path      int  true  "user ID"
// @Success      200      {object}  domain.ExhibitorAccessGrant
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/grants/{userID} [delete]
// @Security     BearerAuth
func (h *GrantHandler) HandleRevokeAccess(ctx *gin.Context) {
	if !h.requireAdmin(ctx) {
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := parseUintParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	grant, err := h.svc.Revoke(ctx.Request.Context(), eventID, userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleRevokeAccess -> h.svc.Revoke -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, grant)
}

// HandleListGrants godoc
// @Summary      List access grants for an event
// @Description  Admin only.
// @Tags         grants
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.ExhibitorAccessGrant
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/grants [get]
// @Security     BearerAuth
func (h *GrantHandler) HandleListGrants(ctx *gin.Context) {
	if !h.requireAdmin(ctx) {
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	grants, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListGrants -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, grants)
}
