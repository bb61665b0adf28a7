package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/response"
	"github.com/salasintercc/expo-admin-api/internal/export"
)

type ExportService interface {
	BuildDocument(ctx context.Context, userID, eventID uint) (export.Document, error)
	ExportPDF(ctx context.Context, userID, eventID uint) ([]byte, string, error)
}

type ExportHandler struct {
	svc  ExportService
	uSvc UserService
}

func NewExportHandler(svc ExportService, uSvc UserService) *ExportHandler {
	return &ExportHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// resolveTarget checks that the caller may export this exhibitor's
// data. Admins may export anyone, exhibitors only themselves.
func (h *ExportHandler) resolveTarget(ctx *gin.Context) (userID, eventID uint, ok bool) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return 0, 0, false
	}

	eventID, respErr = parseUintParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return 0, 0, false
	}

	userID, respErr = parseUintParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return 0, 0, false
	}

	if !user.IsAdmin() && user.ID != userID {
		response.RenderErr(ctx, response.ErrPermissionDenied(
			fmt.Errorf("user %v may not export data of user %v", user.ID, userID)))
		return 0, 0, false
	}

	return userID, eventID, true
}

// HandleExportJSON godoc
// @Summary      Export an exhibitor's configurations as JSON
// @Description  Resolves raw ids into labels and prices. Deleted schemas and stale options degrade to raw ids with warnings instead of failing.
// @Tags         export
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Param        userID   path      int  true  "exhibitor user ID"
// @Success      200      {object}  export.Document
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/exhibitors/{userID}/export [get]
// @Security     BearerAuth
func (h *ExportHandler) HandleExportJSON(ctx *gin.Context) {
	userID, eventID, ok := h.resolveTarget(ctx)
	if !ok {
		return
	}

	doc, err := h.svc.BuildDocument(ctx.Request.Context(), userID, eventID)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleExportJSON -> h.svc.BuildDocument", err)
		return
	}

	ctx.JSON(http.StatusOK, doc)
}

// HandleExportPDF godoc
// @Summary      Export an exhibitor's configurations as PDF
// @Description  Renders the resolved document to an A4 PDF and streams it as an attachment.
// @Tags         export
// @Produce      application/pdf
// @Param        eventID  path      int  true  "event ID"
// @Param        userID   path      int  true  "exhibitor user ID"
// @Success      200      {file}    file
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Router       /events/{eventID}/exhibitors/{userID}/export/pdf [get]
// @Security     BearerAuth
func (h *ExportHandler) HandleExportPDF(ctx *gin.Context) {
	userID, eventID, ok := h.resolveTarget(ctx)
	if !ok {
		return
	}

	pdf, filename, err := h.svc.ExportPDF(ctx.Request.Context(), userID, eventID)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleExportPDF -> h.svc.ExportPDF", err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
