package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/icpcsp/compreg/internal/api/handler/v1/request"
	"github.com/icpcsp/compreg/internal/api/handler/v1/response"
	"github.com/icpcsp/compreg/internal/domain"
)

type UniversityService interface {
	ListUniversities(ctx context.Context) ([]domain.University, error)
	CreateUniversity(ctx context.Context, callerID uint, name string) (domain.University, error)
}

type UniversityHandler struct {
	svc UniversityService
}

func NewUniversityHandler(svc UniversityService) *UniversityHandler {
	return &UniversityHandler{svc: svc}
}

// HandleListUniversities godoc
// @Summary      List universities
// @Tags         universities
// @Produce      json
// @Success      200  {array}   domain.University
// @Failure      500  {object}  response.Err
// @Router       /universities/list [get]
func (h *UniversityHandler) HandleListUniversities(ctx *gin.Context) {
	universities, err := h.svc.ListUniversities(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleListUniversities -> h.svc.ListUniversities -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, universities)
}

// HandleCreateUniversity godoc
// @Summary      Create a university
// @Description  Only system admins can add universities.
// @Tags         universities
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateUniversityRequest  true  "university"
// @Success      201  {object}  domain.University
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /universities [post]
// @Security     BearerAuth
func (h *UniversityHandler) HandleCreateUniversity(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateUniversityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	uni, err := h.svc.CreateUniversity(ctx.Request.Context(), userID, req.Name)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleCreateUniversity -> h.svc.CreateUniversity -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, uni)
}
