package domain

import "time"

type CourseCategory string

const (
	CourseIntroduction          CourseCategory = "Introduction"
	CourseDataStructures        CourseCategory = "Data Structures"
	CourseAlgorithmDesign       CourseCategory = "Algorithm Design"
	CourseProgrammingChallenges CourseCategory = "Programming Challenges"
)

func (c CourseCategory) Valid() bool {
	switch c {
	case CourseIntroduction, CourseDataStructures, CourseAlgorithmDesign, CourseProgrammingChallenges:
		return true
	}
	return false
}

// Course maps a course category to the university's course offering.
type Course struct {
	CompetitionID uint           `json:"competition_id"`
	UniversityID  uint           `json:"university_id"`
	Category      CourseCategory `json:"category"`
	Name          string         `json:"name"`
}

// RegoToggles are the per-university registration switches coaches control.
type RegoToggles struct {
	CompetitionID   uint `json:"competition_id"`
	UniversityID    uint `json:"university_id"`
	StudentRegoOpen bool `json:"student_rego_open"`
	SiteSelection   bool `json:"site_selection"`
	TeamNameChanges bool `json:"team_name_changes"`
	SiteChanges     bool `json:"site_changes"`
}

// DefaultRegoToggles is used for universities whose coaches never saved toggles.
func DefaultRegoToggles(competitionID, universityID uint) RegoToggles {
	return RegoToggles{
		CompetitionID:   competitionID,
		UniversityID:    universityID,
		StudentRegoOpen: true,
		SiteSelection:   true,
		TeamNameChanges: true,
		SiteChanges:     true,
	}
}

type Announcement struct {
	CompetitionID uint      `json:"competition_id"`
	UniversityID  uint      `json:"university_id"`
	Message       string    `json:"message"`
	UpdatedAt     time.Time `json:"updated_at"`
}
