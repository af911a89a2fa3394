package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/icpcsp/compreg/internal/api/handler/v1/response"
	"github.com/icpcsp/compreg/internal/api/middleware"
	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/service"
)

var errNoUserInContext = errors.New("no authenticated user in context")

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

func userIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	userID := ctx.GetUint(middleware.UserIDKey)
	if userID == 0 {
		return 0, response.ErrUnauthorized(errNoUserInContext)
	}
	return userID, nil
}

// getUserFromContext loads the authenticated user. A token whose user was deleted is unauthorized.
func getUserFromContext(ctx *gin.Context, svc UserGetter) (domain.User, *response.Err) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		return domain.User{}, respErr
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(err)
		}
		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("svc.GetUser -> %w", err))
	}

	return user, nil
}

func uintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", name, ctx.Param(name)))
	}
	return uint(v), nil
}

// optionalUintQuery reads ?name=; a missing value is nil.
func optionalUintQuery(ctx *gin.Context, name string) (*uint, *response.Err) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", name, raw))
	}
	id := uint(v)
	return &id, nil
}

// userAndCompetition reads the caller and the :competitionID path parameter.
func userAndCompetition(ctx *gin.Context) (uint, uint, *response.Err) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		return 0, 0, respErr
	}
	competitionID, respErr := uintParam(ctx, "competitionID")
	if respErr != nil {
		return 0, 0, respErr
	}
	return userID, competitionID, nil
}
