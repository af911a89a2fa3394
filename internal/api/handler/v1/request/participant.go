package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/icpcsp/compreg/internal/domain"
)

type StudentDetails struct {
	Level           string `json:"level" binding:"omitempty,competition_level"`
	ICPCEligible    bool   `json:"icpc_eligible"`
	BoersenEligible bool   `json:"boersen_eligible"`
	DegreeYear      int    `json:"degree_year" binding:"min=0,max=10"`
	DegreeField     string `json:"degree_field"`
	IsRemote        bool   `json:"is_remote"`
	PreferredSiteID *uint  `json:"preferred_site_id,omitempty"`
	Bio             string `json:"bio"`
}

func (d *StudentDetails) Validate() error {
	return validation.ValidateStruct(
		d,
		validation.Field(&d.DegreeField, validation.Length(0, 100)),
		validation.Field(&d.Bio, validation.Length(0, 1000)),
	)
}

func (d *StudentDetails) ToStudentInfo() domain.StudentInfo {
	return domain.StudentInfo{
		Level:           domain.CompetitionLevel(d.Level),
		ICPCEligible:    d.ICPCEligible,
		BoersenEligible: d.BoersenEligible,
		DegreeYear:      d.DegreeYear,
		DegreeField:     d.DegreeField,
		IsRemote:        d.IsRemote,
		PreferredSiteID: d.PreferredSiteID,
		Bio:             d.Bio,
	}
}

type StudentJoinRequest struct {
	Code string `json:"code" binding:"required"`
	StudentDetails
}

func (req *StudentJoinRequest) Validate() error {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(8, 8)),
	); err != nil {
		return err
	}
	return req.StudentDetails.Validate()
}

type StaffJoinRequest struct {
	Code         string `json:"code" binding:"required"`
	Role         string `json:"role" binding:"required,competition_role"`
	UniversityID *uint  `json:"university_id,omitempty"`
	SiteID       *uint  `json:"site_id,omitempty"`
	Bio          string `json:"bio"`
}

func (req *StaffJoinRequest) Validate() error {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(8, 8)),
		validation.Field(&req.Role, validation.Required, validation.In(string(domain.RoleCoach), string(domain.RoleSiteCoordinator))),
		validation.Field(&req.Bio, validation.Length(0, 1000)),
	)
}

type UpdateStaffAccessRequest struct {
	Role   string `json:"role" binding:"required,competition_role"`
	Access string `json:"access" binding:"required,oneof=Pending Accepted Rejected"`
}

type TeamRequest struct {
	Name      string `json:"name" binding:"required"`
	Level     string `json:"level" binding:"omitempty,competition_level"`
	SiteID    *uint  `json:"site_id,omitempty"`
	MemberIDs []uint `json:"member_ids" binding:"required,min=1,max=3"`
}

func (req *TeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 60)),
		validation.Field(&req.MemberIDs, validation.Required, validation.Length(1, domain.MaxTeamSize)),
	)
}

type UpdateTeamRequest struct {
	Name   *string `json:"name,omitempty"`
	Level  *string `json:"level,omitempty" binding:"omitempty,competition_level"`
	SiteID *uint   `json:"site_id,omitempty"`
	Status *string `json:"status,omitempty" binding:"omitempty,team_status"`
}

func (req *UpdateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 60)),
	)
}

type ResolveChangeRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

type TeamNameChangeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (req *TeamNameChangeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 60)),
	)
}

type SiteChangeRequest struct {
	SiteID uint `json:"site_id" binding:"required"`
}
