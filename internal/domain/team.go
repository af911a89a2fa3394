package domain

import "time"

type TeamStatus string

const (
	TeamPending      TeamStatus = "Pending"
	TeamRegistered   TeamStatus = "Registered"
	TeamUnregistered TeamStatus = "Unregistered"
)

func (s TeamStatus) Valid() bool {
	return s == TeamPending || s == TeamRegistered || s == TeamUnregistered
}

const MaxTeamSize = 3

type Team struct {
	ID            uint             `json:"id"`
	CompetitionID uint             `json:"competition_id"`
	UniversityID  uint             `json:"university_id"`
	Name          string           `json:"name"`
	Level         CompetitionLevel `json:"level"`
	Status        TeamStatus       `json:"status"`
	SiteID        *uint            `json:"site_id,omitempty"`
	PendingName   string           `json:"pending_name,omitempty"`
	PendingSiteID *uint            `json:"pending_site_id,omitempty"`
	Seat          string           `json:"seat,omitempty"`
	Members       []StudentInfo    `json:"members"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (t Team) MemberIDs() []uint {
	ids := make([]uint, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// TeamDetails is what a student sees of their own team.
type TeamDetails struct {
	Team
	SiteName string `json:"site_name,omitempty"`
}

type SeatAssignment struct {
	TeamID   uint   `json:"team_id"`
	TeamName string `json:"team_name"`
	SiteID   uint   `json:"site_id"`
	SiteName string `json:"site_name"`
	Seat     string `json:"seat"`
}

// AllocationResult is the outcome of one run of the seat allocator.
type AllocationResult struct {
	Assignments []SeatAssignment `json:"assignments"`
	Unplaced    []Team           `json:"unplaced"`
}
