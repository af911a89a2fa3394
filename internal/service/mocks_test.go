package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/icpcsp/compreg/internal/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepo) FindUniversityByID(ctx context.Context, id uint) (domain.University, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.University), args.Error(1)
}

func (m *MockUserRepo) ListUniversities(ctx context.Context) ([]domain.University, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.University), args.Error(1)
}

func (m *MockUserRepo) CreateUniversity(ctx context.Context, uni domain.University) (domain.University, error) {
	args := m.Called(ctx, uni)
	return args.Get(0).(domain.University), args.Error(1)
}

type MockCompetitionRepo struct {
	mock.Mock
}

func (m *MockCompetitionRepo) Create(ctx context.Context, comp domain.Competition, admin domain.StaffInfo) (domain.Competition, error) {
	args := m.Called(ctx, comp, admin)
	return args.Get(0).(domain.Competition), args.Error(1)
}

func (m *MockCompetitionRepo) Update(ctx context.Context, comp domain.Competition) (domain.Competition, error) {
	args := m.Called(ctx, comp)
	return args.Get(0).(domain.Competition), args.Error(1)
}

func (m *MockCompetitionRepo) FindByID(ctx context.Context, id uint) (domain.Competition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Competition), args.Error(1)
}

func (m *MockCompetitionRepo) FindByCode(ctx context.Context, code string) (domain.Competition, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Competition), args.Error(1)
}

func (m *MockCompetitionRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Competition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Competition), args.Error(1)
}

func (m *MockCompetitionRepo) Roles(ctx context.Context, competitionID, userID uint) ([]domain.CompetitionUserRole, error) {
	args := m.Called(ctx, competitionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompetitionUserRole), args.Error(1)
}

func (m *MockCompetitionRepo) FindSite(ctx context.Context, siteID uint) (domain.Site, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).(domain.Site), args.Error(1)
}

func (m *MockCompetitionRepo) ListSites(ctx context.Context, competitionID uint) ([]domain.Site, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockCompetitionRepo) UpdateSiteCapacity(ctx context.Context, siteID uint, capacity int) (domain.Site, error) {
	args := m.Called(ctx, siteID, capacity)
	return args.Get(0).(domain.Site), args.Error(1)
}

type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) CreateStudent(ctx context.Context, info domain.StudentInfo) (domain.StudentInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.StudentInfo), args.Error(1)
}

func (m *MockParticipantRepo) FindStudent(ctx context.Context, competitionID, userID uint) (domain.StudentInfo, error) {
	args := m.Called(ctx, competitionID, userID)
	return args.Get(0).(domain.StudentInfo), args.Error(1)
}

func (m *MockParticipantRepo) UpdateStudent(ctx context.Context, info domain.StudentInfo) (domain.StudentInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.StudentInfo), args.Error(1)
}

func (m *MockParticipantRepo) WithdrawStudent(ctx context.Context, competitionID, userID uint) error {
	args := m.Called(ctx, competitionID, userID)
	return args.Error(0)
}

func (m *MockParticipantRepo) ListStudents(ctx context.Context, f domain.ListFilter) ([]domain.StudentInfo, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentInfo), args.Error(1)
}

func (m *MockParticipantRepo) CreateStaff(ctx context.Context, info domain.StaffInfo) (domain.StaffInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.StaffInfo), args.Error(1)
}

func (m *MockParticipantRepo) FindStaff(ctx context.Context, competitionID, userID uint) ([]domain.StaffInfo, error) {
	args := m.Called(ctx, competitionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffInfo), args.Error(1)
}

func (m *MockParticipantRepo) UpdateStaff(ctx context.Context, info domain.StaffInfo) (domain.StaffInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.StaffInfo), args.Error(1)
}

func (m *MockParticipantRepo) ListStaff(ctx context.Context, f domain.ListFilter) ([]domain.StaffInfo, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffInfo), args.Error(1)
}

type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) CreateTeam(ctx context.Context, team domain.Team, memberIDs []uint) (domain.Team, error) {
	args := m.Called(ctx, team, memberIDs)
	return args.Get(0).(domain.Team), args.Error(1)
}

func (m *MockTeamRepo) FindTeam(ctx context.Context, id uint) (domain.Team, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Team), args.Error(1)
}

func (m *MockTeamRepo) UpdateTeam(ctx context.Context, team domain.Team, fields ...string) (domain.Team, error) {
	args := m.Called(ctx, team, fields)
	return args.Get(0).(domain.Team), args.Error(1)
}

func (m *MockTeamRepo) ListTeams(ctx context.Context, f domain.ListFilter) ([]domain.Team, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamRepo) SaveSeatAssignments(ctx context.Context, competitionID uint, seats []domain.SeatAssignment) error {
	args := m.Called(ctx, competitionID, seats)
	return args.Error(0)
}

func (m *MockTeamRepo) ListSeatAssignments(ctx context.Context, f domain.ListFilter) ([]domain.SeatAssignment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatAssignment), args.Error(1)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) ListCourses(ctx context.Context, competitionID, universityID uint) ([]domain.Course, error) {
	args := m.Called(ctx, competitionID, universityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockSettingsRepo) SaveCourses(ctx context.Context, competitionID, universityID uint, courses []domain.Course) ([]domain.Course, error) {
	args := m.Called(ctx, competitionID, universityID, courses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockSettingsRepo) FindRegoToggles(ctx context.Context, competitionID, universityID uint) (domain.RegoToggles, error) {
	args := m.Called(ctx, competitionID, universityID)
	return args.Get(0).(domain.RegoToggles), args.Error(1)
}

func (m *MockSettingsRepo) SaveRegoToggles(ctx context.Context, t domain.RegoToggles) (domain.RegoToggles, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(domain.RegoToggles), args.Error(1)
}

func (m *MockSettingsRepo) FindAnnouncement(ctx context.Context, competitionID, universityID uint) (domain.Announcement, error) {
	args := m.Called(ctx, competitionID, universityID)
	return args.Get(0).(domain.Announcement), args.Error(1)
}

func (m *MockSettingsRepo) SaveAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Announcement), args.Error(1)
}

// RecordingNotifier keeps every notification it is given.
type RecordingNotifier struct {
	Sent []domain.Notification
	Err  error
}

func (n *RecordingNotifier) Notify(_ context.Context, ns ...domain.Notification) error {
	n.Sent = append(n.Sent, ns...)
	return n.Err
}

func (n *RecordingNotifier) Recipients() []uint {
	ids := make([]uint, 0, len(n.Sent))
	for _, s := range n.Sent {
		ids = append(ids, s.UserID)
	}
	return ids
}

func uintPtr(v uint) *uint {
	return &v
}
