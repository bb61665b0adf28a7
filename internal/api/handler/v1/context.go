package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salasintercc/expo-admin-api/internal/api/handler/v1/response"
	"github.com/salasintercc/expo-admin-api/internal/api/middleware"
	"github.com/salasintercc/expo-admin-api/internal/domain"
)

// getUserFromContext loads the authenticated user set by the JWT
// middleware.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v (%v)", name, raw))
	}

	return uint(value), nil
}

// renderDomainErr maps domain errors onto HTTP responses so every
// handler reports validation and permission failures the same way.
func renderDomainErr(ctx *gin.Context, op string, err error) {
	var (
		validationErr *domain.ValidationError
		incompleteErr *domain.IncompleteConfigurationError
		transitionErr *domain.InvalidTransitionError
		permissionErr *domain.PermissionDeniedError
		upstreamErr   *domain.UpstreamUnavailableError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &incompleteErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.As(err, &transitionErr),
		errors.Is(err, domain.ErrConfigNotDraft),
		errors.Is(err, domain.ErrConfigNotSubmitted):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.As(err, &permissionErr):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.As(err, &upstreamErr):
		response.RenderErr(ctx, response.ErrServiceUnavailable(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
