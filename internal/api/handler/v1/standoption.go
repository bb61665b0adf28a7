package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/request"
	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/response"
	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/service"
)

type StandOptionService interface {
	CreateStandOption(ctx context.Context, option domain.StandOption) (domain.StandOption, error)
	UpdateStandOption(ctx context.Context, option domain.StandOption) (domain.StandOption, error)
	DeleteStandOption(ctx context.Context, id uint) error
	GetStandOption(ctx context.Context, id uint) (domain.StandOption, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.StandOption, error)
}

type StandOptionHandler struct {
	svc  StandOptionService
	uSvc UserService
}

func NewStandOptionHandler(svc StandOptionService, uSvc UserService) *StandOptionHandler {
	return &StandOptionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func (h *StandOptionHandler) requireAdmin(ctx *gin.Context) (domain.User, bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.User{}, false
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return domain.User{}, false
	}

	return user, true
}

// HandleCreateStandOption godoc
// @Summary      Create a stand option schema for an event
// @Description  Defines a configurable stand option with its items and priced choices. Admin only.
// @Tags         stand-options
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                             true  "event ID"
// @Param        input    body      request.SaveStandOptionRequest  true  "stand option schema"
// @Success      201      {object}  domain.StandOption
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/stand-options [post]
// @Security     BearerAuth
func (h *StandOptionHandler) HandleCreateStandOption(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SaveStandOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	option, err := h.svc.CreateStandOption(ctx.Request.Context(), req.ToDomain(eventID))
	if err != nil {
		renderDomainErr(ctx, "v1.HandleCreateStandOption -> h.svc.CreateStandOption", err)
		return
	}

	ctx.JSON(http.StatusCreated, option)
}

// HandleUpdateStandOption godoc
// @Summary      Update a stand option schema
// @Description  Replaces the schema. Existing exhibitor responses keep their raw values; stale ids degrade at export time. Admin only.
// @Tags         stand-options
// @Accept       json
// @Produce      json
// @Param        optionID  path      int                             true  "stand option ID"
// @Param        input     body      request.SaveStandOptionRequest  true  "stand option schema"
// @Success      200       {object}  domain.StandOption
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /stand-options/{optionID} [put]
// @Security     BearerAuth
func (h *StandOptionHandler) HandleUpdateStandOption(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	existing, err := h.svc.GetStandOption(ctx.Request.Context(), optionID)
	if err != nil {
		if errors.Is(err, service.ErrStandOptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stand option", "ID", optionID))
			return
		}

		renderDomainErr(ctx, "v1.HandleUpdateStandOption -> h.svc.GetStandOption", err)
		return
	}

	var req request.SaveStandOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	option := req.ToDomain(existing.EventID)
	option.ID = optionID

	updated, err := h.svc.UpdateStandOption(ctx.Request.Context(), option)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleUpdateStandOption -> h.svc.UpdateStandOption", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteStandOption godoc
// @Summary      Delete a stand option schema
// @Description  Existing configurations survive; exports fall back to raw ids. Admin only.
// @Tags         stand-options
// @Produce      json
// @Param        optionID  path      int  true  "stand option ID"
// @Success      204       "no content"
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /stand-options/{optionID} [delete]
// @Security     BearerAuth
func (h *StandOptionHandler) HandleDeleteStandOption(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteStandOption(ctx.Request.Context(), optionID); err != nil {
		if errors.Is(err, service.ErrStandOptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stand option", "ID", optionID))
			return
		}

		renderDomainErr(ctx, "v1.HandleDeleteStandOption -> h.svc.DeleteStandOption", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetStandOption godoc
// @Summary      Get a stand option schema
// @Tags         stand-options
// @Produce      json
// @Param        optionID  path      int  true  "stand option ID"
// @Success      200       {object}  domain.StandOption
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /stand-options/{optionID} [get]
// @Security     BearerAuth
func (h *StandOptionHandler) HandleGetStandOption(ctx *gin.Context) {
	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	option, err := h.svc.GetStandOption(ctx.Request.Context(), optionID)
	if err != nil {
		if errors.Is(err, service.ErrStandOptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stand option", "ID", optionID))
			return
		}

		renderDomainErr(ctx, "v1.HandleGetStandOption -> h.svc.GetStandOption", err)
		return
	}

	ctx.JSON(http.StatusOK, option)
}

// HandleListStandOptions godoc
// @Summary      List stand option schemas for an event
// @Tags         stand-options
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.StandOption
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/stand-options [get]
// @Security     BearerAuth
func (h *StandOptionHandler) HandleListStandOptions(ctx *gin.Context) {
	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	options, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleListStandOptions -> h.svc.ListByEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, options)
}
