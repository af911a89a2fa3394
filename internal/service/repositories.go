package service

import (
	"context"

	"github.com/icpcsp/compreg/internal/domain"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type CompetitionRepository interface {
	Create(ctx context.Context, comp domain.Competition, admin domain.StaffInfo) (domain.Competition, error)
	Update(ctx context.Context, comp domain.Competition) (domain.Competition, error)
	FindByID(ctx context.Context, id uint) (domain.Competition, error)
	FindByCode(ctx context.Context, code string) (domain.Competition, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Competition, error)
	Roles(ctx context.Context, competitionID, userID uint) ([]domain.CompetitionUserRole, error)
	FindSite(ctx context.Context, siteID uint) (domain.Site, error)
	ListSites(ctx context.Context, competitionID uint) ([]domain.Site, error)
	UpdateSiteCapacity(ctx context.Context, siteID uint, capacity int) (domain.Site, error)
}

type ParticipantRepository interface {
	CreateStudent(ctx context.Context, info domain.StudentInfo) (domain.StudentInfo, error)
	FindStudent(ctx context.Context, competitionID, userID uint) (domain.StudentInfo, error)
	UpdateStudent(ctx context.Context, info domain.StudentInfo) (domain.StudentInfo, error)
	WithdrawStudent(ctx context.Context, competitionID, userID uint) error
	ListStudents(ctx context.Context, f domain.ListFilter) ([]domain.StudentInfo, error)
	CreateStaff(ctx context.Context, info domain.StaffInfo) (domain.StaffInfo, error)
	FindStaff(ctx context.Context, competitionID, userID uint) ([]domain.StaffInfo, error)
	UpdateStaff(ctx context.Context, info domain.StaffInfo) (domain.StaffInfo, error)
	ListStaff(ctx context.Context, f domain.ListFilter) ([]domain.StaffInfo, error)
}

type TeamRepository interface {
	CreateTeam(ctx context.Context, team domain.Team, memberIDs []uint) (domain.Team, error)
	FindTeam(ctx context.Context, id uint) (domain.Team, error)
	UpdateTeam(ctx context.Context, team domain.Team, fields ...string) (domain.Team, error)
	ListTeams(ctx context.Context, f domain.ListFilter) ([]domain.Team, error)
	SaveSeatAssignments(ctx context.Context, competitionID uint, seats []domain.SeatAssignment) error
	ListSeatAssignments(ctx context.Context, f domain.ListFilter) ([]domain.SeatAssignment, error)
}

type SettingsRepository interface {
	ListCourses(ctx context.Context, competitionID, universityID uint) ([]domain.Course, error)
	SaveCourses(ctx context.Context, competitionID, universityID uint, courses []domain.Course) ([]domain.Course, error)
	FindRegoToggles(ctx context.Context, competitionID, universityID uint) (domain.RegoToggles, error)
	SaveRegoToggles(ctx context.Context, t domain.RegoToggles) (domain.RegoToggles, error)
	FindAnnouncement(ctx context.Context, competitionID, universityID uint) (domain.Announcement, error)
	SaveAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
}
