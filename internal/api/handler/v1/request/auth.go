package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/icpcsp/compreg/internal/domain"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d)(?=.*[^A-Za-z\d]).{8,}$`
)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter, 1 number and 1 symbol")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
	errMissingUniversity       = errors.New("university_id is required for students")

	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
)

type SignupRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	UserType        string `json:"user_type" binding:"required,oneof=student staff"`
	UniversityID    *uint  `json:"university_id,omitempty"`
	StudentID       string `json:"student_id,omitempty"`
	PreferredName   string `json:"preferred_name,omitempty"`
	Pronouns        string `json:"pronouns,omitempty"`
	Gender          string `json:"gender,omitempty"`
	TShirtSize      string `json:"tshirt_size,omitempty"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.UserType, validation.Required, validation.In(string(domain.UserTypeStudent), string(domain.UserTypeStaff))),
		validation.Field(&req.StudentID, validation.Length(0, 30)),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordExp.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	if req.UserType == string(domain.UserTypeStudent) && req.UniversityID == nil {
		return errMissingUniversity
	}

	return nil
}

func (req *SignupRequest) ToUser() domain.User {
	return domain.User{
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		PreferredName: req.PreferredName,
		Pronouns:      req.Pronouns,
		Gender:        req.Gender,
		TShirtSize:    req.TShirtSize,
		Type:          domain.UserType(req.UserType),
		UniversityID:  req.UniversityID,
		StudentID:     req.StudentID,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

// ValidPassword reports whether password satisfies the signup policy.
func ValidPassword(password string) bool {
	ok, err := passwordExp.MatchString(password)
	return err == nil && ok
}
