package domain

// CompetitionUserRole scopes what a user may do within one competition.
type CompetitionUserRole string

const (
	RoleAdmin           CompetitionUserRole = "Admin"
	RoleCoach           CompetitionUserRole = "Coach"
	RoleSiteCoordinator CompetitionUserRole = "Site-Coordinator"
	RoleParticipant     CompetitionUserRole = "Participant"
)

func (r CompetitionUserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleSiteCoordinator, RoleParticipant:
		return true
	}
	return false
}

// IsStaff reports whether r is held through a staff registration.
func (r CompetitionUserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleCoach || r == RoleSiteCoordinator
}

// HasRole reports whether roles contains any of want.
func HasRole(roles []CompetitionUserRole, want ...CompetitionUserRole) bool {
	for _, r := range roles {
		for _, w := range want {
			if r == w {
				return true
			}
		}
	}
	return false
}
