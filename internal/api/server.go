package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/icpcsp/compreg/docs"
	v1 "github.com/icpcsp/compreg/internal/api/handler/v1"
	"github.com/icpcsp/compreg/internal/api/handler/v1/request"
	"github.com/icpcsp/compreg/internal/api/middleware"
	"github.com/icpcsp/compreg/internal/config"
	"github.com/icpcsp/compreg/internal/notify"
	"github.com/icpcsp/compreg/internal/repository"
	"github.com/icpcsp/compreg/internal/repository/dao"
	"github.com/icpcsp/compreg/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	university   *v1.UniversityHandler
	competition  *v1.CompetitionHandler
	student      *v1.StudentHandler
	staff        *v1.StaffHandler
	notification *v1.NotificationHandler
}

// NewServer wires every layer on top of db. cache may be nil.
func NewServer(conf *config.AppConfig, db *gorm.DB, hub *notify.Hub, cache service.Cache) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	if err := request.RegisterBindings(); err != nil {
		zap.L().Fatal("register request validators", zap.Error(err))
	}

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, hub, cache))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, hub *notify.Hub, cache service.Cache) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	compRepo := repository.NewCompetitionRepository(dao.NewCompetitionDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	settingsRepo := repository.NewSettingsRepository(dao.NewSettingsDAO(db))
	notificationRepo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))

	notificationSvc := service.NewNotificationService(notificationRepo, hub)

	return handlers{
		auth:        v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo)),
		user:        v1.NewUserHandler(service.NewUserService(userRepo)),
		university:  v1.NewUniversityHandler(service.NewUniversityService(userRepo, cache)),
		competition: v1.NewCompetitionHandler(service.NewCompetitionService(compRepo, userRepo)),
		student: v1.NewStudentHandler(service.NewStudentService(
			compRepo, participantRepo, teamRepo, settingsRepo, userRepo, notificationSvc,
		)),
		staff: v1.NewStaffHandler(service.NewStaffService(
			compRepo, participantRepo, teamRepo, settingsRepo, userRepo, notificationSvc,
		)),
		notification: v1.NewNotificationHandler(notificationSvc, hub),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.GET("/universities/list", h.university.HandleListUniversities)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", h.user.HandleGetMe)
		authed.PUT("/users/me", h.user.HandleUpdateMe)
		authed.POST("/universities", h.university.HandleCreateUniversity)

		authed.GET("/notifications", h.notification.HandleList)
		authed.POST("/notifications/read", h.notification.HandleMarkRead)
		authed.GET("/notifications/stream", h.notification.HandleStream)
	}

	comps := authed.Group("/competitions")
	{
		comps.POST("", h.competition.HandleCreateCompetition)
		comps.GET("", h.competition.HandleListCompetitions)
		comps.GET("/code/:code", h.competition.HandleGetByCode)
		comps.POST("/student/join", h.student.HandleJoin)
		comps.POST("/staff/join", h.staff.HandleJoin)

		comp := comps.Group("/:competitionID")
		comp.GET("", h.competition.HandleGetCompetition)
		comp.PUT("", h.competition.HandleUpdateCompetition)
		comp.GET("/roles", h.competition.HandleGetRoles)
		comp.GET("/sites", h.competition.HandleListSites)
		comp.PUT("/sites/:siteID/capacity", h.staff.HandleUpdateSiteCapacity)

		comp.GET("/students/me", h.student.HandleGetMe)
		comp.PUT("/students/me", h.student.HandleUpdateMe)
		comp.DELETE("/students/me", h.student.HandleWithdraw)
		comp.GET("/students/me/team", h.student.HandleGetTeam)
		comp.POST("/students/me/team/name", h.student.HandleRequestNameChange)
		comp.POST("/students/me/team/site", h.student.HandleRequestSiteChange)

		comp.GET("/staff", h.staff.HandleListStaff)
		comp.PUT("/staff/:userID", h.staff.HandleUpdateStaffAccess)
		comp.GET("/students", h.staff.HandleListStudents)
		comp.PUT("/students/:userID", h.staff.HandleUpdateStudent)
		comp.GET("/teams", h.staff.HandleListTeams)
		comp.POST("/teams", h.staff.HandleCreateTeam)
		comp.PUT("/teams/:teamID", h.staff.HandleUpdateTeam)
		comp.POST("/teams/:teamID/name-change", h.staff.HandleResolveNameChange)
		comp.POST("/teams/:teamID/site-change", h.staff.HandleResolveSiteChange)
		comp.GET("/courses", h.staff.HandleGetCourses)
		comp.PUT("/courses", h.staff.HandleUpdateCourses)
		comp.GET("/rego-toggles", h.staff.HandleGetRegoToggles)
		comp.PUT("/rego-toggles", h.staff.HandleUpdateRegoToggles)
		comp.GET("/announcement", h.staff.HandleGetAnnouncement)
		comp.PUT("/announcement", h.staff.HandleUpdateAnnouncement)
		comp.POST("/algorithm", h.staff.HandleRunAlgorithm)
		comp.GET("/seats", h.staff.HandleListSeats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Competition registration API"
	docs.SwaggerInfo.Description = "Registration, teams and seating for programming competitions."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// HTTPServer wraps the router so the caller controls shutdown.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
