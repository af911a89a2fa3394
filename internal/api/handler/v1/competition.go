package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/icpcsp/compreg/internal/api/handler/v1/request"
	"github.com/icpcsp/compreg/internal/api/handler/v1/response"
	"github.com/icpcsp/compreg/internal/domain"
)

type CompetitionService interface {
	CreateCompetition(ctx context.Context, userID uint, comp domain.Competition) (domain.Competition, error)
	UpdateCompetition(ctx context.Context, userID uint, upd domain.Competition) (domain.Competition, error)
	GetCompetition(ctx context.Context, userID, competitionID uint) (domain.CompetitionSummary, error)
	ListCompetitions(ctx context.Context, userID uint) ([]domain.CompetitionSummary, error)
	GetRoles(ctx context.Context, userID, competitionID uint) ([]domain.CompetitionUserRole, error)
	FindByCode(ctx context.Context, code string) (domain.Competition, error)
	ListSites(ctx context.Context, userID, competitionID uint) ([]domain.Site, error)
}

type CompetitionHandler struct {
	svc CompetitionService
}

func NewCompetitionHandler(svc CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{svc: svc}
}

// HandleCreateCompetition godoc
// @Summary      Create a competition
// @Description  The creator becomes its Admin. A unique join code is generated.
// @Tags         competitions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCompetitionRequest  true  "competition"
// @Success      201  {object}  domain.Competition
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /competitions [post]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleCreateCompetition(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCompetitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comp, err := h.svc.CreateCompetition(ctx.Request.Context(), userID, req.ToCompetition())
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleCreateCompetition -> h.svc.CreateCompetition -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, comp)
}

// HandleListCompetitions godoc
// @Summary      List my competitions
// @Tags         competitions
// @Produce      json
// @Success      200  {array}   domain.CompetitionSummary
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /competitions [get]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleListCompetitions(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	comps, err := h.svc.ListCompetitions(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleListCompetitions -> h.svc.ListCompetitions -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, comps)
}

// HandleGetByCode godoc
// @Summary      Look up a competition by join code
// @Tags         competitions
// @Produce      json
// @Param        code  path      string  true  "join code"
// @Success      200  {object}  response.JoinPreview
// @Failure      404  {object}  response.Err
// @Router       /competitions/code/{code} [get]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleGetByCode(ctx *gin.Context) {
	comp, err := h.svc.FindByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetByCode -> h.svc.FindByCode -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.JoinPreview{
		ID:                 comp.ID,
		Name:               comp.Name,
		Region:             comp.Region,
		GeneralRegDeadline: comp.GeneralRegDeadline.UTC().Format(time.RFC3339),
		StartDate:          comp.StartDate.UTC().Format(time.RFC3339),
		Sites:              comp.Sites,
	})
}

// HandleGetCompetition godoc
// @Summary      Competition details
// @Tags         competitions
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {object}  domain.CompetitionSummary
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID} [get]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleGetCompetition(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	comp, err := h.svc.GetCompetition(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetCompetition -> h.svc.GetCompetition -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, comp)
}

// HandleUpdateCompetition godoc
// @Summary      Update a competition
// @Description  Admin only. The join code and sites are kept.
// @Tags         competitions
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.UpdateCompetitionRequest  true  "competition"
// @Success      200  {object}  domain.Competition
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID} [put]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleUpdateCompetition(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateCompetitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comp, err := h.svc.UpdateCompetition(ctx.Request.Context(), userID, req.ToCompetition(competitionID))
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateCompetition -> h.svc.UpdateCompetition -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, comp)
}

// HandleGetRoles godoc
// @Summary      My roles in a competition
// @Tags         competitions
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {object}  response.RolesResponse
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/roles [get]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleGetRoles(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	roles, err := h.svc.GetRoles(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetRoles -> h.svc.GetRoles -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.RolesResponse{CompetitionID: competitionID, Roles: roles})
}

// HandleListSites godoc
// @Summary      Competition sites
// @Tags         competitions
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {array}   domain.Site
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/sites [get]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleListSites(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sites, err := h.svc.ListSites(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleListSites -> h.svc.ListSites -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, sites)
}
