package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/icpcsp/compreg/internal/domain"
)

type UpdateProfileRequest struct {
	Name              string `json:"name"`
	PreferredName     string `json:"preferred_name"`
	Pronouns          string `json:"pronouns"`
	Gender            string `json:"gender"`
	TShirtSize        string `json:"tshirt_size"`
	DietaryReqs       string `json:"dietary_reqs"`
	AllergyInfo       string `json:"allergy_info"`
	AccessibilityReqs string `json:"accessibility_reqs"`
	StudentID         string `json:"student_id"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(0, 100)),
		validation.Field(&req.PreferredName, validation.Length(0, 100)),
		validation.Field(&req.Pronouns, validation.Length(0, 30)),
		validation.Field(&req.TShirtSize, validation.In("XS", "S", "M", "L", "XL", "2XL", "3XL")),
		validation.Field(&req.DietaryReqs, validation.Length(0, 500)),
		validation.Field(&req.AllergyInfo, validation.Length(0, 500)),
		validation.Field(&req.AccessibilityReqs, validation.Length(0, 500)),
		validation.Field(&req.StudentID, validation.Length(0, 30)),
	)
}

func (req *UpdateProfileRequest) ToProfile() domain.UserProfile {
	return domain.UserProfile{
		Name:              req.Name,
		PreferredName:     req.PreferredName,
		Pronouns:          req.Pronouns,
		Gender:            req.Gender,
		TShirtSize:        req.TShirtSize,
		DietaryReqs:       req.DietaryReqs,
		AllergyInfo:       req.AllergyInfo,
		AccessibilityReqs: req.AccessibilityReqs,
		StudentID:         req.StudentID,
	}
}

type CreateUniversityRequest struct {
	Name string `json:"name" binding:"required"`
}

func (req *CreateUniversityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type MarkReadRequest struct {
	IDs []uint `json:"ids"`
}
