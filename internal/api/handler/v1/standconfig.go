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
	"github.com/salasintercc/expo-admin-api/internal/upload"
	"github.com/salasintercc/expo-admin-api/internal/wizard"
)

type ConfigAdminService interface {
	GetByID(ctx context.Context, id uint) (domain.StandConfig, error)
	SetPaymentStatus(ctx context.Context, configID uint, status domain.PaymentStatus) (domain.StandConfig, error)
	Reopen(ctx context.Context, configID uint) (domain.StandConfig, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.StandConfig, error)
	ListByUserAndEvent(ctx context.Context, userID, eventID uint) ([]domain.StandConfig, error)
}

// StandConfigHandler drives the exhibitor wizard. Each request opens a
// short-lived session over the persisted drafts, applies one mutation
// and returns the refreshed state.
type StandConfigHandler struct {
	gate     wizard.AccessGate
	store    wizard.ConfigStore
	schemas  StandOptionService
	configs  ConfigAdminService
	uploader upload.Uploader
	uSvc     UserService
}

func NewStandConfigHandler(
	gate wizard.AccessGate,
	store wizard.ConfigStore,
	schemas StandOptionService,
	configs ConfigAdminService,
	uploader upload.Uploader,
	uSvc UserService,
) *StandConfigHandler {
	return &StandConfigHandler{
		gate:     gate,
		store:    store,
		schemas:  schemas,
		configs:  configs,
		uploader: uploader,
		uSvc:     uSvc,
	}
}

func (h *StandConfigHandler) openSession(ctx *gin.Context) (*wizard.Session, domain.User, uint, bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return nil, domain.User{}, 0, false
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return nil, domain.User{}, 0, false
	}

	schemas, err := h.schemas.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		renderDomainErr(ctx, "v1.openSession -> h.schemas.ListByEvent", err)
		return nil, domain.User{}, 0, false
	}

	session, err := wizard.NewSession(ctx.Request.Context(), h.gate, h.store, user.ID, eventID, schemas)
	if err != nil {
		renderDomainErr(ctx, "v1.openSession -> wizard.NewSession", err)
		return nil, domain.User{}, 0, false
	}

	return session, user, eventID, true
}

func (h *StandConfigHandler) renderWizard(ctx *gin.Context, session *wizard.Session, eventID uint) {
	steps := session.Steps()

	resp := response.WizardResponse{
		EventID: eventID,
		Steps:   make([]response.WizardStepResponse, len(steps)),
	}
	for i, step := range steps {
		stepResp := response.WizardStepResponse{
			StandOptionID: step.StandOptionID,
			Item:          step.Item,
		}
		if draft, ok := session.Draft(step.StandOptionID); ok {
			if answer, ok := draft.ConfigData[step.Item.ID]; ok {
				stepResp.Response = &answer
			}

			seen := false
			for _, d := range resp.Drafts {
				if d.ID == draft.ID {
					seen = true
					break
				}
			}
			if !seen {
				resp.Drafts = append(resp.Drafts, draft)
			}
		}

		resp.Steps[i] = stepResp
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleOpenWizard godoc
// @Summary      Open the stand configuration wizard
// @Description  Loads or creates the exhibitor's drafts for every stand option of the event.
// @Tags         wizard
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.WizardResponse
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/wizard [get]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleOpenWizard(ctx *gin.Context) {
	session, _, eventID, ok := h.openSession(ctx)
	if !ok {
		return
	}

	h.renderWizard(ctx, session, eventID)
}

// HandleSetText godoc
// @Summary      Save a text or upload answer
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        eventID   path      int                        true  "event ID"
// @Param        optionID  path      int                        true  "stand option ID"
// @Param        itemID    path      string                     true  "item ID"
// @Param        input     body      request.UpdateItemRequest  true  "answer"
// @Success      200       {object}  response.WizardResponse
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventID}/wizard/options/{optionID}/items/{itemID} [put]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleSetText(ctx *gin.Context) {
	session, _, eventID, ok := h.openSession(ctx)
	if !ok {
		return
	}

	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	itemID := ctx.Param("itemID")

	var req request.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := session.SetText(ctx.Request.Context(), optionID, itemID, req.Text); err != nil {
		renderDomainErr(ctx, "v1.HandleSetText -> session.SetText", err)
		return
	}

	h.renderWizard(ctx, session, eventID)
}

// HandleSelectOption godoc
// @Summary      Select a priced option
// @Description  Adds the option to the item's selections. Single-choice items replace the previous selection; at the selection bound the request fails.
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        eventID   path      int                          true  "event ID"
// @Param        optionID  path      int                          true  "stand option ID"
// @Param        itemID    path      string                       true  "item ID"
// @Param        input     body      request.SelectOptionRequest  true  "option to select"
// @Success      200       {object}  response.WizardResponse
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventID}/wizard/options/{optionID}/items/{itemID}/selections [post]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleSelectOption(ctx *gin.Context) {
	session, _, eventID, ok := h.openSession(ctx)
	if !ok {
		return
	}

	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	itemID := ctx.Param("itemID")

	var req request.SelectOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := session.Select(ctx.Request.Context(), optionID, itemID, req.OptionID); err != nil {
		renderDomainErr(ctx, "v1.HandleSelectOption -> session.Select", err)
		return
	}

	h.renderWizard(ctx, session, eventID)
}

// HandleDeselectOption godoc
// @Summary      Deselect a priced option
// @Description  Removes the option from the item's selections. Deselecting an option that is not selected succeeds.
// @Tags         wizard
// @Produce      json
// @Param        eventID    path      int     true  "event ID"
// @Param        optionID   path      int     true  "stand option ID"
// @Param        itemID     path      string  true  "item ID"
// @Param        choiceID   path      string  true  "selected option ID"
// @Success      200        {object}  response.WizardResponse
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventID}/wizard/options/{optionID}/items/{itemID}/selections/{choiceID} [delete]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleDeselectOption(ctx *gin.Context) {
	session, _, eventID, ok := h.openSession(ctx)
	if !ok {
		return
	}

	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	itemID := ctx.Param("itemID")
	choiceID := ctx.Param("choiceID")

	if err := session.Deselect(ctx.Request.Context(), optionID, itemID, choiceID); err != nil {
		renderDomainErr(ctx, "v1.HandleDeselectOption -> session.Deselect", err)
		return
	}

	h.renderWizard(ctx, session, eventID)
}

// HandleUploadFile godoc
// @Summary      Upload a file for an upload item
// @Description  Stores the file and records its URL as the item's answer.
// @Tags         wizard
// @Accept       multipart/form-data
// @Produce      json
// @Param        eventID   path      int     true  "event ID"
// @Param        optionID  path      int     true  "stand option ID"
// @Param        itemID    path      string  true  "item ID"
// @Param        file      formData  file    true  "file to upload"
// @Success      200       {object}  response.UploadResponse
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventID}/wizard/options/{optionID}/items/{itemID}/upload [post]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleUploadFile(ctx *gin.Context) {
	session, _, _, ok := h.openSession(ctx)
	if !ok {
		return
	}

	optionID, respErr := parseUintParam(ctx, "optionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	itemID := ctx.Param("itemID")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	url, err := h.uploader.Save(ctx.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadFile -> h.uploader.Save -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if err := session.SetUpload(ctx.Request.Context(), optionID, itemID, url); err != nil {
		renderDomainErr(ctx, "v1.HandleUploadFile -> session.SetUpload", err)
		return
	}

	ctx.JSON(http.StatusOK, response.UploadResponse{URL: url})
}

// HandleSubmitWizard godoc
// @Summary      Submit all configurations for the event
// @Description  Finalizes every draft. Partial failures are reported per configuration; the successful ones stay submitted.
// @Tags         wizard
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.SubmitOutcomeResponse
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/wizard/submit [post]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleSubmitWizard(ctx *gin.Context) {
	session, _, _, ok := h.openSession(ctx)
	if !ok {
		return
	}

	outcome, err := session.Complete(ctx.Request.Context())
	if err != nil {
		renderDomainErr(ctx, "v1.HandleSubmitWizard -> session.Complete", err)
		return
	}

	resp := response.SubmitOutcomeResponse{
		Submitted: outcome.Submitted,
	}
	if len(outcome.Failed) > 0 {
		resp.Failed = make(map[uint]string, len(outcome.Failed))
		for id, failErr := range outcome.Failed {
			resp.Failed[id] = failErr.Error()
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleListMyConfigs godoc
// @Summary      List own configurations for an event
// @Tags         stand-configs
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.StandConfig
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/my-stand-configs [get]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleListMyConfigs(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	configs, err := h.configs.ListByUserAndEvent(ctx.Request.Context(), user.ID, eventID)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleListMyConfigs -> h.configs.ListByUserAndEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, configs)
}

// HandleListEventConfigs godoc
// @Summary      List all configurations for an event
// @Description  Admin only.
// @Tags         stand-configs
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.StandConfig
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/stand-configs [get]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleListEventConfigs(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	eventID, respErr := parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	configs, err := h.configs.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleListEventConfigs -> h.configs.ListByEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, configs)
}

// HandleSetPaymentStatus godoc
// @Summary      Set the payment status of a configuration
// @Description  Moves the submitted configuration along the payment state machine. Admin only; Stripe drives the same transitions through the webhook.
// @Tags         stand-configs
// @Accept       json
// @Produce      json
// @Param        configID  path      int                           true  "configuration ID"
// @Param        input     body      request.PaymentStatusRequest  true  "target status"
// @Success      200       {object}  domain.StandConfig
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /stand-configs/{configID}/payment-status [patch]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleSetPaymentStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	configID, respErr := parseUintParam(ctx, "configID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.configs.SetPaymentStatus(ctx.Request.Context(), configID, domain.PaymentStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrStandConfigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stand config", "ID", configID))
			return
		}

		renderDomainErr(ctx, "v1.HandleSetPaymentStatus -> h.configs.SetPaymentStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleReopenConfig godoc
// @Summary      Reopen a submitted configuration
// @Description  Returns the configuration to draft so the exhibitor can edit and resubmit. Admin only.
// @Tags         stand-configs
// @Produce      json
// @Param        configID  path      int  true  "configuration ID"
// @Success      200       {object}  domain.StandConfig
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /stand-configs/{configID}/reopen [post]
// @Security     BearerAuth
func (h *StandConfigHandler) HandleReopenConfig(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	configID, respErr := parseUintParam(ctx, "configID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reopened, err := h.configs.Reopen(ctx.Request.Context(), configID)
	if err != nil {
		if errors.Is(err, service.ErrStandConfigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stand config", "ID", configID))
			return
		}

		renderDomainErr(ctx, "v1.HandleReopenConfig -> h.configs.Reopen", err)
		return
	}

	ctx.JSON(http.StatusOK, reopened)
}
