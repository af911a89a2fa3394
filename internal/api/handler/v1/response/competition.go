package response

import "github.com/icpcsp/compreg/internal/domain"

type RolesResponse struct {
	CompetitionID uint                         `json:"competition_id"`
	Roles         []domain.CompetitionUserRole `json:"roles"`
}

// JoinPreview is the public view of a competition found by join code.
type JoinPreview struct {
	ID                 uint          `json:"id"`
	Name               string        `json:"name"`
	Region             string        `json:"region"`
	GeneralRegDeadline string        `json:"general_reg_deadline"`
	StartDate          string        `json:"start_date"`
	Sites              []domain.Site `json:"sites"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
