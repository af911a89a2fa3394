package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/icpcsp/compreg/internal/api/handler/v1/request"
	"github.com/icpcsp/compreg/internal/api/handler/v1/response"
	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/metrics"
)

type StudentService interface {
	Register(ctx context.Context, userID uint, code string, info domain.StudentInfo) (domain.StudentInfo, error)
	Withdraw(ctx context.Context, userID, competitionID uint) error
	GetStudentInfo(ctx context.Context, userID, competitionID uint) (domain.StudentInfo, error)
	UpdateStudentInfo(ctx context.Context, userID, competitionID uint, patch domain.StudentInfo) (domain.StudentInfo, error)
	GetTeamDetails(ctx context.Context, userID, competitionID uint) (domain.TeamDetails, error)
	RequestTeamNameChange(ctx context.Context, userID, competitionID uint, name string) (domain.Team, error)
	RequestSiteChange(ctx context.Context, userID, competitionID, siteID uint) (domain.Team, error)
}

type StudentHandler struct {
	svc StudentService
}

func NewStudentHandler(svc StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// HandleJoin godoc
// @Summary      Register as a student participant
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        request  body      request.StudentJoinRequest  true  "join code and details"
// @Success      201  {object}  domain.StudentInfo
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /competitions/student/join [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleJoin(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StudentJoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	info, err := h.svc.Register(ctx.Request.Context(), userID, req.Code, req.ToStudentInfo())
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleJoin -> h.svc.Register -> %w", err)))
		return
	}
	metrics.RegistrationsTotal.WithLabelValues("student").Inc()

	ctx.JSON(http.StatusCreated, info)
}

// HandleGetMe godoc
// @Summary      My participant record
// @Tags         students
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {object}  domain.StudentInfo
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/me [get]
// @Security     BearerAuth
func (h *StudentHandler) HandleGetMe(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	info, err := h.svc.GetStudentInfo(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetMe -> h.svc.GetStudentInfo -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleUpdateMe godoc
// @Summary      Update my participant record
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.StudentDetails  true  "details"
// @Success      200  {object}  domain.StudentInfo
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/me [put]
// @Security     BearerAuth
func (h *StudentHandler) HandleUpdateMe(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StudentDetails
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	info, err := h.svc.UpdateStudentInfo(ctx.Request.Context(), userID, competitionID, req.ToStudentInfo())
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateMe -> h.svc.UpdateStudentInfo -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleWithdraw godoc
// @Summary      Withdraw from a competition
// @Tags         students
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/me [delete]
// @Security     BearerAuth
func (h *StudentHandler) HandleWithdraw(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Withdraw(ctx.Request.Context(), userID, competitionID); err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleWithdraw -> h.svc.Withdraw -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "withdrawn from competition"})
}

// HandleGetTeam godoc
// @Summary      My team
// @Tags         students
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {object}  domain.TeamDetails
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/me/team [get]
// @Security     BearerAuth
func (h *StudentHandler) HandleGetTeam(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	team, err := h.svc.GetTeamDetails(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeamDetails -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleRequestNameChange godoc
// @Summary      Ask staff to rename my team
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.TeamNameChangeRequest  true  "new name"
// @Success      202  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/me/team/name [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleRequestNameChange(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TeamNameChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.RequestTeamNameChange(ctx.Request.Context(), userID, competitionID, req.Name)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleRequestNameChange -> h.svc.RequestTeamNameChange -> %w", err)))
		return
	}

	ctx.JSON(http.StatusAccepted, team)
}

// HandleRequestSiteChange godoc
// @Summary      Ask staff to move my team to another site
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.SiteChangeRequest  true  "site"
// @Success      202  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/me/team/site [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleRequestSiteChange(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SiteChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.RequestSiteChange(ctx.Request.Context(), userID, competitionID, req.SiteID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleRequestSiteChange -> h.svc.RequestSiteChange -> %w", err)))
		return
	}

	ctx.JSON(http.StatusAccepted, team)
}
