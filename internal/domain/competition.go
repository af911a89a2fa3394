package domain

import "time"

type Competition struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Code               string     `json:"code"`
	Region             string     `json:"region"`
	EarlyRegDeadline   *time.Time `json:"early_reg_deadline,omitempty"`
	GeneralRegDeadline time.Time  `json:"general_reg_deadline"`
	StartDate          time.Time  `json:"start_date"`
	Information        string     `json:"information"`
	Sites              []Site     `json:"sites"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// RegistrationOpen reports whether registrations are still accepted at now.
func (c Competition) RegistrationOpen(now time.Time) bool {
	return !now.After(c.GeneralRegDeadline)
}

// SiteByID returns the competition site with the given id.
func (c Competition) SiteByID(id uint) (Site, bool) {
	for _, s := range c.Sites {
		if s.ID == id {
			return s, true
		}
	}
	return Site{}, false
}

type Site struct {
	ID            uint   `json:"id"`
	CompetitionID uint   `json:"competition_id"`
	UniversityID  *uint  `json:"university_id,omitempty"`
	Name          string `json:"name"`
	Capacity      int    `json:"capacity"`
}

// CompetitionSummary is a competition together with the caller's roles in it.
type CompetitionSummary struct {
	Competition
	Roles []CompetitionUserRole `json:"roles"`
}

// ListFilter narrows a listing to what a staff member is allowed to see.
// Nil fields are not filtered on.
type ListFilter struct {
	CompetitionID uint
	UniversityID  *uint
	SiteID        *uint
}
