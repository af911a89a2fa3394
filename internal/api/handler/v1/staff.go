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
	"github.com/icpcsp/compreg/internal/service"
)

type StaffService interface {
	Register(ctx context.Context, userID uint, code string, reg service.StaffRegistration) (domain.StaffInfo, error)
	ListStaff(ctx context.Context, userID, competitionID uint) ([]domain.StaffInfo, error)
	UpdateStaffAccess(ctx context.Context, userID, competitionID, staffUserID uint, role domain.CompetitionUserRole, access domain.StaffAccess) (domain.StaffInfo, error)
	ListStudents(ctx context.Context, userID, competitionID uint) ([]domain.StudentInfo, error)
	UpdateStudent(ctx context.Context, userID, competitionID, studentUserID uint, patch domain.StudentInfo) (domain.StudentInfo, error)
	ListTeams(ctx context.Context, userID, competitionID uint) ([]domain.Team, error)
	CreateTeam(ctx context.Context, userID, competitionID uint, draft service.TeamDraft) (domain.Team, error)
	UpdateTeam(ctx context.Context, userID, competitionID, teamID uint, upd service.TeamUpdate) (domain.Team, error)
	ResolveTeamNameChange(ctx context.Context, userID, competitionID, teamID uint, approve bool) (domain.Team, error)
	ResolveTeamSiteChange(ctx context.Context, userID, competitionID, teamID uint, approve bool) (domain.Team, error)
	GetCourses(ctx context.Context, userID, competitionID uint, universityID *uint) ([]domain.Course, error)
	UpdateCourses(ctx context.Context, userID, competitionID uint, universityID *uint, courses []domain.Course) ([]domain.Course, error)
	GetRegoToggles(ctx context.Context, userID, competitionID uint, universityID *uint) (domain.RegoToggles, error)
	UpdateRegoToggles(ctx context.Context, userID, competitionID uint, universityID *uint, toggles domain.RegoToggles) (domain.RegoToggles, error)
	UpdateSiteCapacity(ctx context.Context, userID, competitionID, siteID uint, capacity int) (domain.Site, error)
	GetAnnouncement(ctx context.Context, userID, competitionID uint, universityID *uint) (domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, userID, competitionID uint, universityID *uint, message string) (domain.Announcement, error)
	CompetitionAlgorithm(ctx context.Context, userID, competitionID uint) (domain.AllocationResult, error)
	ListSeatAssignments(ctx context.Context, userID, competitionID uint) ([]domain.SeatAssignment, error)
}

type StaffHandler struct {
	svc StaffService
}

func NewStaffHandler(svc StaffService) *StaffHandler {
	return &StaffHandler{svc: svc}
}

// HandleJoin godoc
// @Summary      Register as competition staff
// @Description  Coaches and Site-Coordinators start Pending until an Admin accepts them.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request  body      request.StaffJoinRequest  true  "join code and role"
// @Success      201  {object}  domain.StaffInfo
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /competitions/staff/join [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleJoin(ctx *gin.Context) {
	userID, respErr := userIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StaffJoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	info, err := h.svc.Register(ctx.Request.Context(), userID, req.Code, service.StaffRegistration{
		Role:         domain.CompetitionUserRole(req.Role),
		UniversityID: req.UniversityID,
		SiteID:       req.SiteID,
		Bio:          req.Bio,
	})
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleJoin -> h.svc.Register -> %w", err)))
		return
	}
	metrics.RegistrationsTotal.WithLabelValues("staff").Inc()

	ctx.JSON(http.StatusCreated, info)
}

// HandleListStaff godoc
// @Summary      List competition staff
// @Tags         staff
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {array}   domain.StaffInfo
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/staff [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleListStaff(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	staff, err := h.svc.ListStaff(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleListStaff -> h.svc.ListStaff -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleUpdateStaffAccess godoc
// @Summary      Accept or reject a staff registration
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        userID         path  int  true  "staff user ID"
// @Param        request  body      request.UpdateStaffAccessRequest  true  "access"
// @Success      200  {object}  domain.StaffInfo
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/staff/{userID} [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateStaffAccess(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	staffUserID, respErr := uintParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateStaffAccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	info, err := h.svc.UpdateStaffAccess(ctx.Request.Context(), userID, competitionID, staffUserID,
		domain.CompetitionUserRole(req.Role), domain.StaffAccess(req.Access))
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateStaffAccess -> h.svc.UpdateStaffAccess -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleListStudents godoc
// @Summary      List participants visible to the caller
// @Tags         staff
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {array}   domain.StudentInfo
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleListStudents(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	students, err := h.svc.ListStudents(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleListStudents -> h.svc.ListStudents -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleUpdateStudent godoc
// @Summary      Edit a participant's registration
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        userID         path  int  true  "student user ID"
// @Param        request  body      request.StudentDetails  true  "details"
// @Success      200  {object}  domain.StudentInfo
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/students/{userID} [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateStudent(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	studentUserID, respErr := uintParam(ctx, "userID")
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

	info, err := h.svc.UpdateStudent(ctx.Request.Context(), userID, competitionID, studentUserID, req.ToStudentInfo())
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateStudent -> h.svc.UpdateStudent -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleListTeams godoc
// @Summary      List teams visible to the caller
// @Tags         teams
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {array}   domain.Team
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/teams [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleListTeams(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teams, err := h.svc.ListTeams(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleListTeams -> h.svc.ListTeams -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleCreateTeam godoc
// @Summary      Create a team from registered participants
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.TeamRequest  true  "team"
// @Success      201  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /competitions/{competitionID}/teams [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleCreateTeam(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.CreateTeam(ctx.Request.Context(), userID, competitionID, service.TeamDraft{
		Name:      req.Name,
		Level:     domain.CompetitionLevel(req.Level),
		SiteID:    req.SiteID,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleUpdateTeam godoc
// @Summary      Update a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        teamID         path  int  true  "team ID"
// @Param        request  body      request.UpdateTeamRequest  true  "fields to change"
// @Success      200  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/teams/{teamID} [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateTeam(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	teamID, respErr := uintParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	upd := service.TeamUpdate{Name: req.Name, SiteID: req.SiteID}
	if req.Level != nil {
		level := domain.CompetitionLevel(*req.Level)
		upd.Level = &level
	}
	if req.Status != nil {
		status := domain.TeamStatus(*req.Status)
		upd.Status = &status
	}

	team, err := h.svc.UpdateTeam(ctx.Request.Context(), userID, competitionID, teamID, upd)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateTeam -> h.svc.UpdateTeam -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleResolveNameChange godoc
// @Summary      Approve or reject a requested team name
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        teamID         path  int  true  "team ID"
// @Param        request  body      request.ResolveChangeRequest  true  "decision"
// @Success      200  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/teams/{teamID}/name-change [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleResolveNameChange(ctx *gin.Context) {
	h.resolveChange(ctx, "HandleResolveNameChange", h.svc.ResolveTeamNameChange)
}

// HandleResolveSiteChange godoc
// @Summary      Approve or reject a requested site move
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        teamID         path  int  true  "team ID"
// @Param        request  body      request.ResolveChangeRequest  true  "decision"
// @Success      200  {object}  domain.Team
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/teams/{teamID}/site-change [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleResolveSiteChange(ctx *gin.Context) {
	h.resolveChange(ctx, "HandleResolveSiteChange", h.svc.ResolveTeamSiteChange)
}

type resolveFunc func(ctx context.Context, userID, competitionID, teamID uint, approve bool) (domain.Team, error)

func (h *StaffHandler) resolveChange(ctx *gin.Context, name string, resolve resolveFunc) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	teamID, respErr := uintParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ResolveChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := resolve(ctx.Request.Context(), userID, competitionID, teamID, *req.Approve)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.%s -> %w", name, err)))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleGetCourses godoc
// @Summary      Course names shown in the registration form
// @Tags         settings
// @Produce      json
// @Param        competitionID  path   int  true   "competition ID"
// @Param        university_id  query  int  false  "university (Admin only)"
// @Success      200  {array}   domain.Course
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /competitions/{competitionID}/courses [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleGetCourses(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	universityID, respErr := optionalUintQuery(ctx, "university_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	courses, err := h.svc.GetCourses(ctx.Request.Context(), userID, competitionID, universityID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetCourses -> h.svc.GetCourses -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// HandleUpdateCourses godoc
// @Summary      Replace a university's course names
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.CoursesRequest  true  "courses"
// @Success      200  {array}   domain.Course
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /competitions/{competitionID}/courses [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateCourses(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	courses, err := h.svc.UpdateCourses(ctx.Request.Context(), userID, competitionID, req.UniversityID, req.ToCourses())
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateCourses -> h.svc.UpdateCourses -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// HandleGetRegoToggles godoc
// @Summary      Registration toggles for a university
// @Tags         settings
// @Produce      json
// @Param        competitionID  path   int  true   "competition ID"
// @Param        university_id  query  int  false  "university (Admin only)"
// @Success      200  {object}  domain.RegoToggles
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /competitions/{competitionID}/rego-toggles [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleGetRegoToggles(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	universityID, respErr := optionalUintQuery(ctx, "university_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	toggles, err := h.svc.GetRegoToggles(ctx.Request.Context(), userID, competitionID, universityID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetRegoToggles -> h.svc.GetRegoToggles -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, toggles)
}

// HandleUpdateRegoToggles godoc
// @Summary      Change registration toggles
// @Description  Admin or Coach only.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.RegoTogglesRequest  true  "toggles"
// @Success      200  {object}  domain.RegoToggles
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /competitions/{competitionID}/rego-toggles [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateRegoToggles(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegoTogglesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	toggles, err := h.svc.UpdateRegoToggles(ctx.Request.Context(), userID, competitionID, req.UniversityID, req.ToToggles())
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateRegoToggles -> h.svc.UpdateRegoToggles -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, toggles)
}

// HandleUpdateSiteCapacity godoc
// @Summary      Set a site's seat capacity
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        siteID         path  int  true  "site ID"
// @Param        request  body      request.SiteCapacityRequest  true  "capacity"
// @Success      200  {object}  domain.Site
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/sites/{siteID}/capacity [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateSiteCapacity(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	siteID, respErr := uintParam(ctx, "siteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SiteCapacityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	site, err := h.svc.UpdateSiteCapacity(ctx.Request.Context(), userID, competitionID, siteID, *req.Capacity)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateSiteCapacity -> h.svc.UpdateSiteCapacity -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, site)
}

// HandleGetAnnouncement godoc
// @Summary      University announcement
// @Tags         settings
// @Produce      json
// @Param        competitionID  path   int  true   "competition ID"
// @Param        university_id  query  int  false  "university (Admin only)"
// @Success      200  {object}  domain.Announcement
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /competitions/{competitionID}/announcement [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleGetAnnouncement(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	universityID, respErr := optionalUintQuery(ctx, "university_id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ann, err := h.svc.GetAnnouncement(ctx.Request.Context(), userID, competitionID, universityID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleGetAnnouncement -> h.svc.GetAnnouncement -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, ann)
}

// HandleUpdateAnnouncement godoc
// @Summary      Replace a university announcement
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Param        request  body      request.AnnouncementRequest  true  "announcement"
// @Success      200  {object}  domain.Announcement
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /competitions/{competitionID}/announcement [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateAnnouncement(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ann, err := h.svc.UpdateAnnouncement(ctx.Request.Context(), userID, competitionID, req.UniversityID, req.Message)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleUpdateAnnouncement -> h.svc.UpdateAnnouncement -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, ann)
}

// HandleRunAlgorithm godoc
// @Summary      Run seat allocation
// @Description  Admin only. Seats Registered teams round-robin across sites without exceeding capacity.
// @Tags         seats
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {object}  domain.AllocationResult
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/algorithm [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleRunAlgorithm(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.CompetitionAlgorithm(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleRunAlgorithm -> h.svc.CompetitionAlgorithm -> %w", err)))
		return
	}
	metrics.SeatsAssigned.Observe(float64(len(result.Assignments)))

	ctx.JSON(http.StatusOK, result)
}

// HandleListSeats godoc
// @Summary      Seat assignments visible to the caller
// @Tags         seats
// @Produce      json
// @Param        competitionID  path  int  true  "competition ID"
// @Success      200  {array}   domain.SeatAssignment
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /competitions/{competitionID}/seats [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleListSeats(ctx *gin.Context) {
	userID, competitionID, respErr := userAndCompetition(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	seats, err := h.svc.ListSeatAssignments(ctx.Request.Context(), userID, competitionID)
	if err != nil {
		response.RenderErr(ctx, response.FromServiceErr(fmt.Errorf("v1.HandleListSeats -> h.svc.ListSeatAssignments -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, seats)
}
