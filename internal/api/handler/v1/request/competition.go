package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/icpcsp/compreg/internal/domain"
)

var errDeadlineAfterStart = errors.New("general_reg_deadline must be before start_date")

type SiteRequest struct {
	Name         string `json:"name" binding:"required"`
	Capacity     int    `json:"capacity" binding:"min=0"`
	UniversityID *uint  `json:"university_id,omitempty"`
}

type CreateCompetitionRequest struct {
	Name               string        `json:"name" binding:"required"`
	Region             string        `json:"region"`
	EarlyRegDeadline   *time.Time    `json:"early_reg_deadline,omitempty"`
	GeneralRegDeadline time.Time     `json:"general_reg_deadline" binding:"required"`
	StartDate          time.Time     `json:"start_date" binding:"required"`
	Information        string        `json:"information"`
	Sites              []SiteRequest `json:"sites" binding:"required,min=1,dive"`
}

func (req *CreateCompetitionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Region, validation.Length(0, 100)),
		validation.Field(&req.Information, validation.Length(0, 5000)),
		validation.Field(&req.Sites, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.GeneralRegDeadline.Before(req.StartDate) {
		return errDeadlineAfterStart
	}

	return nil
}

func (req *CreateCompetitionRequest) ToCompetition() domain.Competition {
	sites := make([]domain.Site, 0, len(req.Sites))
	for _, s := range req.Sites {
		sites = append(sites, domain.Site{
			Name:         s.Name,
			Capacity:     s.Capacity,
			UniversityID: s.UniversityID,
		})
	}

	return domain.Competition{
		Name:               req.Name,
		Region:             req.Region,
		EarlyRegDeadline:   req.EarlyRegDeadline,
		GeneralRegDeadline: req.GeneralRegDeadline,
		StartDate:          req.StartDate,
		Information:        req.Information,
		Sites:              sites,
	}
}

type UpdateCompetitionRequest struct {
	Name               string     `json:"name" binding:"required"`
	Region             string     `json:"region"`
	EarlyRegDeadline   *time.Time `json:"early_reg_deadline,omitempty"`
	GeneralRegDeadline time.Time  `json:"general_reg_deadline" binding:"required"`
	StartDate          time.Time  `json:"start_date" binding:"required"`
	Information        string     `json:"information"`
}

func (req *UpdateCompetitionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Region, validation.Length(0, 100)),
		validation.Field(&req.Information, validation.Length(0, 5000)),
	)
	if err != nil {
		return err
	}

	if !req.GeneralRegDeadline.Before(req.StartDate) {
		return errDeadlineAfterStart
	}

	return nil
}

func (req *UpdateCompetitionRequest) ToCompetition(id uint) domain.Competition {
	return domain.Competition{
		ID:                 id,
		Name:               req.Name,
		Region:             req.Region,
		EarlyRegDeadline:   req.EarlyRegDeadline,
		GeneralRegDeadline: req.GeneralRegDeadline,
		StartDate:          req.StartDate,
		Information:        req.Information,
	}
}

type SiteCapacityRequest struct {
	Capacity *int `json:"capacity" binding:"required,min=0"`
}

type AnnouncementRequest struct {
	UniversityID *uint  `json:"university_id,omitempty"`
	Message      string `json:"message"`
}

func (req *AnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Length(0, 5000)),
	)
}

type RegoTogglesRequest struct {
	UniversityID    *uint `json:"university_id,omitempty"`
	StudentRegoOpen bool  `json:"student_rego_open"`
	SiteSelection   bool  `json:"site_selection"`
	TeamNameChanges bool  `json:"team_name_changes"`
	SiteChanges     bool  `json:"site_changes"`
}

func (req *RegoTogglesRequest) ToToggles() domain.RegoToggles {
	return domain.RegoToggles{
		StudentRegoOpen: req.StudentRegoOpen,
		SiteSelection:   req.SiteSelection,
		TeamNameChanges: req.TeamNameChanges,
		SiteChanges:     req.SiteChanges,
	}
}

type CourseItem struct {
	Category string `json:"category" binding:"required"`
	Name     string `json:"name"`
}

type CoursesRequest struct {
	UniversityID *uint        `json:"university_id,omitempty"`
	Courses      []CourseItem `json:"courses" binding:"dive"`
}

func (req *CoursesRequest) Validate() error {
	for _, c := range req.Courses {
		err := validation.ValidateStruct(
			&c,
			validation.Field(&c.Category, validation.Required, validation.In(
				string(domain.CourseIntroduction),
				string(domain.CourseDataStructures),
				string(domain.CourseAlgorithmDesign),
				string(domain.CourseProgrammingChallenges),
			)),
			validation.Field(&c.Name, validation.Length(0, 200)),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (req *CoursesRequest) ToCourses() []domain.Course {
	courses := make([]domain.Course, 0, len(req.Courses))
	for _, c := range req.Courses {
		courses = append(courses, domain.Course{Category: domain.CourseCategory(c.Category), Name: c.Name})
	}
	return courses
}
