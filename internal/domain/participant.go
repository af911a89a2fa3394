package domain

import "time"

type CompetitionLevel string

const (
	LevelA            CompetitionLevel = "Level A"
	LevelB            CompetitionLevel = "Level B"
	LevelNoPreference CompetitionLevel = "No Preference"
)

func (l CompetitionLevel) Valid() bool {
	return l == LevelA || l == LevelB || l == LevelNoPreference
}

type StaffAccess string

const (
	AccessPending  StaffAccess = "Pending"
	AccessAccepted StaffAccess = "Accepted"
	AccessRejected StaffAccess = "Rejected"
)

func (a StaffAccess) Valid() bool {
	return a == AccessPending || a == AccessAccepted || a == AccessRejected
}

// StudentInfo is a student's registration in one competition.
type StudentInfo struct {
	ID              uint             `json:"id"`
	CompetitionID   uint             `json:"competition_id"`
	UserID          uint             `json:"user_id"`
	UniversityID    uint             `json:"university_id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	ICPCEligible    bool             `json:"icpc_eligible"`
	Level           CompetitionLevel `json:"level"`
	BoersenEligible bool             `json:"boersen_eligible"`
	DegreeYear      int              `json:"degree_year"`
	DegreeField     string           `json:"degree_field"`
	IsRemote        bool             `json:"is_remote"`
	PreferredSiteID *uint            `json:"preferred_site_id,omitempty"`
	TeamID          *uint            `json:"team_id,omitempty"`
	Bio             string           `json:"bio"`
	CreatedAt       time.Time        `json:"created_at"`
}

// StaffInfo is one staff role held by a user in one competition.
type StaffInfo struct {
	ID            uint                `json:"id"`
	CompetitionID uint                `json:"competition_id"`
	UserID        uint                `json:"user_id"`
	UniversityID  uint                `json:"university_id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Role          CompetitionUserRole `json:"role"`
	SiteID        *uint               `json:"site_id,omitempty"`
	Access        StaffAccess         `json:"access"`
	Bio           string              `json:"bio"`
	CreatedAt     time.Time           `json:"created_at"`
}
