package domain

import "time"

type UserType string

const (
	UserTypeStudent     UserType = "student"
	UserTypeStaff       UserType = "staff"
	UserTypeSystemAdmin UserType = "system_admin"
)

type User struct {
	ID                uint      `json:"id"`
	Email             string    `json:"email"`
	Password          string    `json:"-"`
	Name              string    `json:"name"`
	PreferredName     string    `json:"preferred_name"`
	Pronouns          string    `json:"pronouns"`
	Gender            string    `json:"gender"`
	TShirtSize        string    `json:"tshirt_size"`
	DietaryReqs       string    `json:"dietary_reqs"`
	AllergyInfo       string    `json:"allergy_info"`
	AccessibilityReqs string    `json:"accessibility_reqs"`
	Type              UserType  `json:"user_type"`
	UniversityID      *uint     `json:"university_id,omitempty"`
	StudentID         string    `json:"student_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserProfile is the editable subset of a User.
type UserProfile struct {
	Name              string
	PreferredName     string
	Pronouns          string
	Gender            string
	TShirtSize        string
	DietaryReqs       string
	AllergyInfo       string
	AccessibilityReqs string
	StudentID         string
}

func (u *User) ApplyProfile(p UserProfile) {
	if p.Name != "" {
		u.Name = p.Name
	}
	u.PreferredName = p.PreferredName
	u.Pronouns = p.Pronouns
	u.Gender = p.Gender
	u.TShirtSize = p.TShirtSize
	u.DietaryReqs = p.DietaryReqs
	u.AllergyInfo = p.AllergyInfo
	u.AccessibilityReqs = p.AccessibilityReqs
	u.StudentID = p.StudentID
}

type University struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
