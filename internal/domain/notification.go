package domain

import "time"

type NotificationType string

const (
	NotificationWelcome     NotificationType = "welcome"
	NotificationTeamStatus  NotificationType = "teamStatus"
	NotificationTeamName    NotificationType = "teamName"
	NotificationTeamSite    NotificationType = "teamSite"
	NotificationStaffAccess NotificationType = "staffAccess"
	NotificationWithdrawal  NotificationType = "withdrawal"
	NotificationSeat        NotificationType = "seatAssigned"
)

type Notification struct {
	ID            uint             `json:"id"`
	UserID        uint             `json:"user_id"`
	CompetitionID *uint            `json:"competition_id,omitempty"`
	TeamID        *uint            `json:"team_id,omitempty"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"created_at"`
}
