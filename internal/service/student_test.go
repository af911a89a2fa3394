package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

type fixture struct {
	comps        *MockCompetitionRepo
	participants *MockParticipantRepo
	teams        *MockTeamRepo
	settings     *MockSettingsRepo
	users        *MockUserRepo
	notifier     *RecordingNotifier
}

func newFixture() *fixture {
	return &fixture{
		comps:        new(MockCompetitionRepo),
		participants: new(MockParticipantRepo),
		teams:        new(MockTeamRepo),
		settings:     new(MockSettingsRepo),
		users:        new(MockUserRepo),
		notifier:     &RecordingNotifier{},
	}
}

var fixtureNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func (f *fixture) studentService() *StudentService {
	svc := NewStudentService(f.comps, f.participants, f.teams, f.settings, f.users, f.notifier)
	svc.now = func() time.Time { return fixtureNow }
	return svc
}

func (f *fixture) staffService() *StaffService {
	svc := NewStaffService(f.comps, f.participants, f.teams, f.settings, f.users, f.notifier)
	svc.now = func() time.Time { return fixtureNow }
	return svc
}

func openCompetition() domain.Competition {
	return domain.Competition{
		ID:                 4,
		Name:               "SPR",
		Code:               "ABCD1234",
		GeneralRegDeadline: fixtureNow.AddDate(0, 0, 7),
		StartDate:          fixtureNow.AddDate(0, 0, 30),
		Sites: []domain.Site{
			{ID: 1, CompetitionID: 4, Name: "North", Capacity: 10},
			{ID: 2, CompetitionID: 4, Name: "South", Capacity: 10},
		},
	}
}

func (f *fixture) withRoles(userID uint, roles ...domain.CompetitionUserRole) {
	f.comps.On("FindByID", mock.Anything, uint(4)).Return(openCompetition(), nil).Maybe()
	f.comps.On("Roles", mock.Anything, uint(4), userID).Return(roles, nil)
}

func TestStudentService_Register(t *testing.T) {
	ctx := context.Background()
	student := domain.User{ID: 10, Type: domain.UserTypeStudent, UniversityID: uintPtr(7)}

	t.Run("registers and welcomes the student", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(openCompetition(), nil)
		f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(domain.DefaultRegoToggles(4, 7), nil)
		f.participants.On("CreateStudent", mock.Anything, mock.MatchedBy(func(s domain.StudentInfo) bool {
			return s.CompetitionID == 4 && s.UserID == 10 && s.UniversityID == 7 &&
				s.Level == domain.LevelNoPreference && *s.PreferredSiteID == 2
		})).Return(domain.StudentInfo{ID: 1, CompetitionID: 4, UserID: 10}, nil).Once()

		created, err := f.studentService().Register(ctx, 10, "abcd1234", domain.StudentInfo{PreferredSiteID: uintPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		require.Len(t, f.notifier.Sent, 1)
		assert.Equal(t, domain.NotificationWelcome, f.notifier.Sent[0].Type)
	})

	t.Run("site is dropped when site selection is off", func(t *testing.T) {
		f := newFixture()
		toggles := domain.DefaultRegoToggles(4, 7)
		toggles.SiteSelection = false
		f.users.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(openCompetition(), nil)
		f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(toggles, nil)
		f.participants.On("CreateStudent", mock.Anything, mock.MatchedBy(func(s domain.StudentInfo) bool {
			return s.PreferredSiteID == nil
		})).Return(domain.StudentInfo{ID: 1}, nil).Once()

		_, err := f.studentService().Register(ctx, 10, "ABCD1234", domain.StudentInfo{PreferredSiteID: uintPtr(2)})
		require.NoError(t, err)
		f.participants.AssertExpectations(t)
	})

	t.Run("closed university registration", func(t *testing.T) {
		f := newFixture()
		toggles := domain.DefaultRegoToggles(4, 7)
		toggles.StudentRegoOpen = false
		f.users.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(openCompetition(), nil)
		f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(toggles, nil)

		_, err := f.studentService().Register(ctx, 10, "ABCD1234", domain.StudentInfo{})
		assert.True(t, IsKind(err, KindAuth))
	})

	t.Run("past the general deadline", func(t *testing.T) {
		f := newFixture()
		comp := openCompetition()
		comp.GeneralRegDeadline = fixtureNow.Add(-time.Minute)
		f.users.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(comp, nil)

		_, err := f.studentService().Register(ctx, 10, "ABCD1234", domain.StudentInfo{})
		assert.True(t, IsKind(err, KindBadRequest))
	})

	t.Run("duplicate registration", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(openCompetition(), nil)
		f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(domain.DefaultRegoToggles(4, 7), nil)
		f.participants.On("CreateStudent", mock.Anything, mock.Anything).Return(domain.StudentInfo{}, repository.ErrDuplicateRegistration)

		_, err := f.studentService().Register(ctx, 10, "ABCD1234", domain.StudentInfo{})
		assert.True(t, IsKind(err, KindConflict))
		assert.Empty(t, f.notifier.Sent)
	})

	t.Run("staff cannot register as students", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, uint(11)).Return(domain.User{ID: 11, Type: domain.UserTypeStaff}, nil)

		_, err := f.studentService().Register(ctx, 11, "ABCD1234", domain.StudentInfo{})
		assert.True(t, IsKind(err, KindAuth))
	})
}

func TestStudentService_Withdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("last member leaves nobody to notify", func(t *testing.T) {
		f := newFixture()
		f.withRoles(10, domain.RoleParticipant)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
			Return(domain.StudentInfo{UserID: 10, TeamID: uintPtr(3)}, nil)
		f.teams.On("FindTeam", mock.Anything, uint(3)).
			Return(domain.Team{ID: 3, Members: []domain.StudentInfo{{UserID: 10}}}, nil)
		f.participants.On("WithdrawStudent", mock.Anything, uint(4), uint(10)).Return(nil).Once()

		require.NoError(t, f.studentService().Withdraw(ctx, 10, 4))
		f.participants.AssertExpectations(t)
		assert.Empty(t, f.notifier.Sent)
	})

	t.Run("remaining members are told the team is pending", func(t *testing.T) {
		f := newFixture()
		f.withRoles(10, domain.RoleParticipant)
		team := domain.Team{
			ID:      3,
			Name:    "Bits",
			Status:  domain.TeamRegistered,
			Seat:    "North-01",
			Members: []domain.StudentInfo{{UserID: 10}, {UserID: 11}, {UserID: 12}},
		}
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
			Return(domain.StudentInfo{UserID: 10, Name: "Ada", TeamID: uintPtr(3)}, nil)
		f.teams.On("FindTeam", mock.Anything, uint(3)).Return(team, nil)
		f.participants.On("WithdrawStudent", mock.Anything, uint(4), uint(10)).Return(nil).Once()

		require.NoError(t, f.studentService().Withdraw(ctx, 10, 4))
		f.participants.AssertExpectations(t)
		f.teams.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
		assert.ElementsMatch(t, []uint{11, 12}, f.notifier.Recipients())
	})

	t.Run("failed withdrawal notifies nobody", func(t *testing.T) {
		f := newFixture()
		f.withRoles(10, domain.RoleParticipant)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
			Return(domain.StudentInfo{UserID: 10, TeamID: uintPtr(3)}, nil)
		f.teams.On("FindTeam", mock.Anything, uint(3)).
			Return(domain.Team{ID: 3, Members: []domain.StudentInfo{{UserID: 10}, {UserID: 11}}}, nil)
		f.participants.On("WithdrawStudent", mock.Anything, uint(4), uint(10)).Return(errors.New("connection reset")).Once()

		require.Error(t, f.studentService().Withdraw(ctx, 10, 4))
		assert.Empty(t, f.notifier.Sent)
	})

	t.Run("non participants are rejected", func(t *testing.T) {
		f := newFixture()
		f.withRoles(20, domain.RoleCoach)

		err := f.studentService().Withdraw(ctx, 20, 4)
		assert.True(t, IsKind(err, KindAuth))
	})
}

func TestStudentService_GetTeamDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("includes the site name", func(t *testing.T) {
		f := newFixture()
		f.withRoles(10, domain.RoleParticipant)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
			Return(domain.StudentInfo{UserID: 10, TeamID: uintPtr(3)}, nil)
		f.teams.On("FindTeam", mock.Anything, uint(3)).Return(domain.Team{ID: 3, SiteID: uintPtr(2)}, nil)

		details, err := f.studentService().GetTeamDetails(ctx, 10, 4)
		require.NoError(t, err)
		assert.Equal(t, "South", details.SiteName)
	})

	t.Run("not in a team", func(t *testing.T) {
		f := newFixture()
		f.withRoles(10, domain.RoleParticipant)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
			Return(domain.StudentInfo{UserID: 10}, nil)

		_, err := f.studentService().GetTeamDetails(ctx, 10, 4)
		assert.True(t, IsKind(err, KindNotFound))
	})
}

func TestStudentService_RequestTeamNameChange(t *testing.T) {
	ctx := context.Background()
	team := domain.Team{ID: 3, CompetitionID: 4, UniversityID: 7, Name: "Bits"}

	setup := func(toggles domain.RegoToggles) *fixture {
		f := newFixture()
		f.withRoles(10, domain.RoleParticipant)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
			Return(domain.StudentInfo{UserID: 10, TeamID: uintPtr(3)}, nil)
		f.teams.On("FindTeam", mock.Anything, uint(3)).Return(team, nil)
		f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(toggles, nil)
		return f
	}

	t.Run("sets the pending name and tells the coaches", func(t *testing.T) {
		f := setup(domain.DefaultRegoToggles(4, 7))
		f.teams.On("UpdateTeam", mock.Anything, mock.MatchedBy(func(t domain.Team) bool {
			return t.PendingName == "Bytes" && t.Name == "Bits"
		}), []string{repository.TeamPendingName}).Return(team, nil).Once()
		f.participants.On("ListStaff", mock.Anything, domain.ListFilter{CompetitionID: 4, UniversityID: uintPtr(7)}).
			Return([]domain.StaffInfo{
				{UserID: 20, Role: domain.RoleCoach, Access: domain.AccessAccepted},
				{UserID: 21, Role: domain.RoleCoach, Access: domain.AccessPending},
				{UserID: 22, Role: domain.RoleSiteCoordinator, Access: domain.AccessAccepted},
			}, nil)

		_, err := f.studentService().RequestTeamNameChange(ctx, 10, 4, " Bytes ")
		require.NoError(t, err)
		assert.Equal(t, []uint{20}, f.notifier.Recipients())
	})

	t.Run("disabled by the toggle", func(t *testing.T) {
		toggles := domain.DefaultRegoToggles(4, 7)
		toggles.TeamNameChanges = false
		f := setup(toggles)

		_, err := f.studentService().RequestTeamNameChange(ctx, 10, 4, "Bytes")
		assert.True(t, IsKind(err, KindAuth))
		f.teams.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStudentService_RequestSiteChange(t *testing.T) {
	f := newFixture()
	f.withRoles(10, domain.RoleParticipant)
	f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).
		Return(domain.StudentInfo{UserID: 10, TeamID: uintPtr(3)}, nil)
	f.teams.On("FindTeam", mock.Anything, uint(3)).Return(domain.Team{ID: 3, UniversityID: 7}, nil)
	f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(domain.DefaultRegoToggles(4, 7), nil)

	_, err := f.studentService().RequestSiteChange(context.Background(), 10, 4, 99)
	assert.True(t, IsKind(err, KindBadRequest))
}

func TestStudentService_UpdateStudentInfo(t *testing.T) {
	ctx := context.Background()
	current := domain.StudentInfo{
		UserID: 10, CompetitionID: 4, UniversityID: 7,
		Level: domain.LevelB, PreferredSiteID: uintPtr(1), TeamID: uintPtr(3),
	}

	tests := []struct {
		name          string
		siteSelection bool
		patch         domain.StudentInfo
		wantKind      ErrorKind
		wantSite      uint
	}{
		{
			name:          "changes the preferred site",
			siteSelection: true,
			patch:         domain.StudentInfo{Level: domain.LevelA, PreferredSiteID: uintPtr(2), Bio: "hi"},
			wantSite:      2,
		},
		{
			name:          "site selection disabled",
			siteSelection: false,
			patch:         domain.StudentInfo{PreferredSiteID: uintPtr(2)},
			wantKind:      KindAuth,
		},
		{
			name:          "site of another competition",
			siteSelection: true,
			patch:         domain.StudentInfo{PreferredSiteID: uintPtr(99)},
			wantKind:      KindBadRequest,
		},
		{
			name:          "no site in the patch skips the toggle",
			siteSelection: false,
			patch:         domain.StudentInfo{Bio: "hi"},
			wantSite:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withRoles(10, domain.RoleParticipant)
			f.participants.On("FindStudent", mock.Anything, uint(4), uint(10)).Return(current, nil)
			toggles := domain.DefaultRegoToggles(4, 7)
			toggles.SiteSelection = tt.siteSelection
			f.settings.On("FindRegoToggles", mock.Anything, uint(4), uint(7)).Return(toggles, nil).Maybe()

			var saved domain.StudentInfo
			if tt.wantKind == "" {
				f.participants.On("UpdateStudent", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) { saved = args.Get(1).(domain.StudentInfo) }).
					Return(current, nil).Once()
			}

			_, err := f.studentService().UpdateStudentInfo(ctx, 10, 4, tt.patch)
			if tt.wantKind != "" {
				assert.True(t, IsKind(err, tt.wantKind))
				f.participants.AssertNotCalled(t, "UpdateStudent", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, saved.PreferredSiteID)
			assert.Equal(t, tt.wantSite, *saved.PreferredSiteID)
			assert.Equal(t, "hi", saved.Bio)
			assert.Equal(t, uintPtr(3), saved.TeamID, "team membership is not editable here")
		})
	}
}
