package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/response"
	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/payment"
	"github.com/salasintercc/expo-admin-api/internal/service"
)

type PaymentClient interface {
	CreateIntent(ctx context.Context, cfg domain.StandConfig) (payment.Intent, error)
	ParseWebhook(payload []byte, signature string) (*payment.StatusUpdate, error)
}

type PaymentConfigService interface {
	GetByID(ctx context.Context, id uint) (domain.StandConfig, error)
	SetPaymentStatus(ctx context.Context, configID uint, status domain.PaymentStatus) (domain.StandConfig, error)
}

type PaymentHandler struct {
	client  PaymentClient
	configs PaymentConfigService
	uSvc    UserService
}

func NewPaymentHandler(client PaymentClient, configs PaymentConfigService, uSvc UserService) *PaymentHandler {
	return &PaymentHandler{
		client:  client,
		configs: configs,
		uSvc:    uSvc,
	}
}

// HandleCreatePaymentIntent godoc
// @Summary      Open a payment intent for a submitted configuration
// @Description  Returns the Stripe client secret. The configuration must be submitted and belong to the caller.
// @Tags         payments
// @Produce      json
// @Param        configID  path      int  true  "configuration ID"
// @Success      200       {object}  response.PaymentIntentResponse
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Failure      503       {object}  response.Err
// @Router       /stand-configs/{configID}/payment-intent [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandleCreatePaymentIntent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	configID, respErr := parseUintParam(ctx, "configID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	cfg, err := h.configs.GetByID(ctx.Request.Context(), configID)
	if err != nil {
		if errors.Is(err, service.ErrStandConfigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stand config", "ID", configID))
			return
		}

		renderDomainErr(ctx, "v1.HandleCreatePaymentIntent -> h.configs.GetByID", err)
		return
	}

	if cfg.UserID != user.ID {
		response.RenderErr(ctx, response.ErrPermissionDenied(
			fmt.Errorf("configuration %v does not belong to user %v", configID, user.ID)))
		return
	}

	intent, err := h.client.CreateIntent(ctx.Request.Context(), cfg)
	if err != nil {
		renderDomainErr(ctx, "v1.HandleCreatePaymentIntent -> h.client.CreateIntent", err)
		return
	}

	ctx.JSON(http.StatusOK, response.PaymentIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	})
}

// HandleStripeWebhook godoc
// @Summary      Stripe webhook endpoint
// @Description  Verifies the signature and applies the payment status transition. Unknown events are acknowledged and ignored.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {string}  string "ok"
// @Failure      400  {object}  response.Err
// @Router       /webhooks/stripe [post]
func (h *PaymentHandler) HandleStripeWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update, err := h.client.ParseWebhook(payload, ctx.GetHeader("Stripe-Signature"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if update == nil {
		ctx.String(http.StatusOK, "ok")
		return
	}

	if _, err = h.configs.SetPaymentStatus(ctx.Request.Context(), update.ConfigID, update.Status); err != nil {
		// Stripe retries on non-2xx. A transition rejected by the state
		// machine will never succeed, so acknowledge it and log.
		var transitionErr *domain.InvalidTransitionError
		if errors.As(err, &transitionErr) || errors.Is(err, domain.ErrConfigNotSubmitted) {
			zap.L().Warn("webhook transition rejected",
				zap.Uint("config_id", update.ConfigID),
				zap.String("status", string(update.Status)),
				zap.Error(err))
			ctx.String(http.StatusOK, "ok")
			return
		}

		err = fmt.Errorf("v1.HandleStripeWebhook -> h.configs.SetPaymentStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.String(http.StatusOK, "ok")
}
