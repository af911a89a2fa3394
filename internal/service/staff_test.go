package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

const (
	adminID = uint(1)
	coachID = uint(2)
	siteID  = uint(3)
	kidID   = uint(10)
)

func (f *fixture) withStaffUsers() {
	f.withRoles(adminID, domain.RoleAdmin)
	f.withRoles(coachID, domain.RoleCoach)
	f.withRoles(siteID, domain.RoleSiteCoordinator)
	f.withRoles(kidID, domain.RoleParticipant)
	f.participants.On("FindStaff", mock.Anything, uint(4), adminID).Return([]domain.StaffInfo{
		{UserID: adminID, Role: domain.RoleAdmin, Access: domain.AccessAccepted},
	}, nil).Maybe()
	f.participants.On("FindStaff", mock.Anything, uint(4), coachID).Return([]domain.StaffInfo{
		{UserID: coachID, UniversityID: 7, Role: domain.RoleCoach, Access: domain.AccessAccepted},
	}, nil).Maybe()
	f.participants.On("FindStaff", mock.Anything, uint(4), siteID).Return([]domain.StaffInfo{
		{UserID: siteID, UniversityID: 8, Role: domain.RoleSiteCoordinator, SiteID: uintPtr(2), Access: domain.AccessAccepted},
	}, nil).Maybe()
	f.participants.On("FindStaff", mock.Anything, uint(4), kidID).Return([]domain.StaffInfo{}, nil).Maybe()
	f.participants.On("FindStudent", mock.Anything, uint(4), kidID).
		Return(domain.StudentInfo{UserID: kidID, UniversityID: 7}, nil).Maybe()
}

func TestStaffService_RoleGating(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func(s *StaffService, userID uint) error
		allowed []uint
	}{
		{
			name: "ListStaff",
			call: func(s *StaffService, userID uint) error {
				_, err := s.ListStaff(ctx, userID, 4)
				return err
			},
			allowed: []uint{adminID, coachID},
		},
		{
			name: "ListStudents",
			call: func(s *StaffService, userID uint) error {
				_, err := s.ListStudents(ctx, userID, 4)
				return err
			},
			allowed: []uint{adminID, coachID, siteID},
		},
		{
			name: "UpdateRegoToggles",
			call: func(s *StaffService, userID uint) error {
				_, err := s.UpdateRegoToggles(ctx, userID, 4, uintPtr(7), domain.RegoToggles{})
				return err
			},
			allowed: []uint{adminID, coachID},
		},
		{
			name: "GetRegoToggles",
			call: func(s *StaffService, userID uint) error {
				var uni *uint
				if userID == adminID {
					uni = uintPtr(7)
				}
				_, err := s.GetRegoToggles(ctx, userID, 4, uni)
				return err
			},
			allowed: []uint{adminID, coachID, siteID, kidID},
		},
		{
			name: "UpdateAnnouncement",
			call: func(s *StaffService, userID uint) error {
				_, err := s.UpdateAnnouncement(ctx, userID, 4, uintPtr(7), "hello")
				return err
			},
			allowed: []uint{adminID, coachID},
		},
		{
			name: "CompetitionAlgorithm",
			call: func(s *StaffService, userID uint) error {
				_, err := s.CompetitionAlgorithm(ctx, userID, 4)
				return err
			},
			allowed: []uint{adminID},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.withStaffUsers()
			f.participants.On("ListStaff", mock.Anything, mock.Anything).Return([]domain.StaffInfo{}, nil).Maybe()
			f.participants.On("ListStudents", mock.Anything, mock.Anything).Return([]domain.StudentInfo{}, nil).Maybe()
			f.settings.On("SaveRegoToggles", mock.Anything, mock.Anything).Return(domain.RegoToggles{}, nil).Maybe()
			f.settings.On("FindRegoToggles", mock.Anything, mock.Anything, mock.Anything).Return(domain.RegoToggles{}, nil).Maybe()
			f.settings.On("SaveAnnouncement", mock.Anything, mock.Anything).Return(domain.Announcement{}, nil).Maybe()
			f.teams.On("ListTeams", mock.Anything, mock.Anything).Return([]domain.Team{}, nil).Maybe()
			f.teams.On("SaveSeatAssignments", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
			svc := f.staffService()

			for _, userID := range []uint{adminID, coachID, siteID, kidID} {
				err := tc.call(svc, userID)
				if contains(tc.allowed, userID) {
					assert.NoError(t, err, "user %d should be allowed", userID)
				} else {
					assert.True(t, IsKind(err, KindAuth), "user %d should be rejected, got %v", userID, err)
				}
			}
		})
	}
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestStaffService_ViewScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.withStaffUsers()
	svc := f.staffService()

	f.teams.On("ListTeams", mock.Anything, domain.ListFilter{CompetitionID: 4}).Return([]domain.Team{{ID: 1}, {ID: 2}}, nil)
	f.teams.On("ListTeams", mock.Anything, domain.ListFilter{CompetitionID: 4, UniversityID: uintPtr(7)}).Return([]domain.Team{{ID: 1}}, nil)
	f.teams.On("ListTeams", mock.Anything, domain.ListFilter{CompetitionID: 4, SiteID: uintPtr(2)}).Return([]domain.Team{{ID: 2}}, nil)

	all, err := svc.ListTeams(ctx, adminID, 4)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListTeams(ctx, coachID, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(1), own[0].ID)

	site, err := svc.ListTeams(ctx, siteID, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(2), site[0].ID)
}

func TestStaffService_Register(t *testing.T) {
	ctx := context.Background()
	staffUser := domain.User{ID: 30, Type: domain.UserTypeStaff, UniversityID: uintPtr(7)}

	t.Run("coach starts pending", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, uint(30)).Return(staffUser, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(openCompetition(), nil)
		f.participants.On("CreateStaff", mock.Anything, domain.StaffInfo{
			CompetitionID: 4, UserID: 30, UniversityID: 7, Role: domain.RoleCoach, Access: domain.AccessPending,
		}).Return(domain.StaffInfo{ID: 5, Access: domain.AccessPending}, nil).Once()

		created, err := f.staffService().Register(ctx, 30, "ABCD1234", StaffRegistration{Role: domain.RoleCoach})
		require.NoError(t, err)
		assert.Equal(t, domain.AccessPending, created.Access)
	})

	t.Run("admin cannot be self assigned", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, uint(30)).Return(staffUser, nil)

		_, err := f.staffService().Register(ctx, 30, "ABCD1234", StaffRegistration{Role: domain.RoleAdmin})
		assert.True(t, IsKind(err, KindBadRequest))
	})

	t.Run("site coordinator needs a competition site", func(t *testing.T) {
		f := newFixture()
		f.users.On("FindByID", mock.Anything, uint(30)).Return(staffUser, nil)
		f.comps.On("FindByCode", mock.Anything, "ABCD1234").Return(openCompetition(), nil)

		_, err := f.staffService().Register(ctx, 30, "ABCD1234", StaffRegistration{Role: domain.RoleSiteCoordinator, SiteID: uintPtr(9)})
		assert.True(t, IsKind(err, KindBadRequest))
	})
}

func TestStaffService_UpdateStaffAccess(t *testing.T) {
	f := newFixture()
	f.withStaffUsers()
	f.participants.On("FindStaff", mock.Anything, uint(4), uint(30)).Return([]domain.StaffInfo{
		{ID: 5, UserID: 30, Role: domain.RoleCoach, Access: domain.AccessPending},
	}, nil)
	f.participants.On("UpdateStaff", mock.Anything, mock.MatchedBy(func(s domain.StaffInfo) bool {
		return s.ID == 5 && s.Access == domain.AccessAccepted
	})).Return(domain.StaffInfo{ID: 5, Access: domain.AccessAccepted}, nil).Once()

	updated, err := f.staffService().UpdateStaffAccess(context.Background(), adminID, 4, 30, domain.RoleCoach, domain.AccessAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessAccepted, updated.Access)
	assert.Equal(t, []uint{30}, f.notifier.Recipients())

	_, err = f.staffService().UpdateStaffAccess(context.Background(), adminID, 4, 30, domain.RoleSiteCoordinator, domain.AccessAccepted)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestStaffService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	student := func(id, uni uint, teamID *uint) domain.StudentInfo {
		return domain.StudentInfo{UserID: id, UniversityID: uni, Name: "s", TeamID: teamID}
	}

	t.Run("coach creates a registered team", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(11)).Return(student(11, 7, nil), nil)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(12)).Return(student(12, 7, nil), nil)
		f.teams.On("CreateTeam", mock.Anything, mock.MatchedBy(func(t domain.Team) bool {
			return t.Status == domain.TeamRegistered && t.UniversityID == 7 && t.Level == domain.LevelNoPreference
		}), []uint{11, 12}).Return(domain.Team{ID: 9, Name: "Bits"}, nil).Once()

		team, err := f.staffService().CreateTeam(ctx, coachID, 4, TeamDraft{Name: "Bits", MemberIDs: []uint{11, 12}})
		require.NoError(t, err)
		assert.Equal(t, uint(9), team.ID)
		assert.ElementsMatch(t, []uint{11, 12}, f.notifier.Recipients())
	})

	t.Run("too many members", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()

		_, err := f.staffService().CreateTeam(ctx, coachID, 4, TeamDraft{Name: "Bits", MemberIDs: []uint{11, 12, 13, 14}})
		assert.True(t, IsKind(err, KindBadRequest))
	})

	t.Run("mixed universities", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(11)).Return(student(11, 7, nil), nil)
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(12)).Return(student(12, 8, nil), nil)

		_, err := f.staffService().CreateTeam(ctx, adminID, 4, TeamDraft{Name: "Bits", MemberIDs: []uint{11, 12}})
		assert.True(t, IsKind(err, KindBadRequest))
	})

	t.Run("member already teamed", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(11)).Return(student(11, 7, uintPtr(3)), nil)

		_, err := f.staffService().CreateTeam(ctx, coachID, 4, TeamDraft{Name: "Bits", MemberIDs: []uint{11}})
		assert.True(t, IsKind(err, KindConflict))
	})

	t.Run("coach of another university", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		f.participants.On("FindStudent", mock.Anything, uint(4), uint(11)).Return(student(11, 8, nil), nil)

		_, err := f.staffService().CreateTeam(ctx, coachID, 4, TeamDraft{Name: "Bits", MemberIDs: []uint{11}})
		assert.True(t, IsKind(err, KindAuth))
	})
}

func TestStaffService_ResolveTeamNameChange(t *testing.T) {
	ctx := context.Background()
	team := domain.Team{
		ID: 3, CompetitionID: 4, UniversityID: 7, Name: "Bits", PendingName: "Bytes",
		Members: []domain.StudentInfo{{UserID: 11}},
	}

	t.Run("approve applies the name", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		f.teams.On("FindTeam", mock.Anything, uint(3)).Return(team, nil)
		f.teams.On("UpdateTeam", mock.Anything, mock.MatchedBy(func(t domain.Team) bool {
			return t.Name == "Bytes" && t.PendingName == ""
		}), []string{repository.TeamName, repository.TeamPendingName}).Return(domain.Team{ID: 3, Name: "Bytes"}, nil).Once()

		updated, err := f.staffService().ResolveTeamNameChange(ctx, coachID, 4, 3, true)
		require.NoError(t, err)
		assert.Equal(t, "Bytes", updated.Name)
		assert.Equal(t, []uint{11}, f.notifier.Recipients())
	})

	t.Run("reject clears the request", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		f.teams.On("FindTeam", mock.Anything, uint(3)).Return(team, nil)
		f.teams.On("UpdateTeam", mock.Anything, mock.MatchedBy(func(t domain.Team) bool {
			return t.Name == "Bits" && t.PendingName == ""
		}), []string{repository.TeamName, repository.TeamPendingName}).Return(domain.Team{ID: 3, Name: "Bits"}, nil).Once()

		_, err := f.staffService().ResolveTeamNameChange(ctx, adminID, 4, 3, false)
		require.NoError(t, err)
	})

	t.Run("team of another competition", func(t *testing.T) {
		f := newFixture()
		f.withStaffUsers()
		other := team
		other.CompetitionID = 5
		f.teams.On("FindTeam", mock.Anything, uint(3)).Return(other, nil)

		_, err := f.staffService().ResolveTeamNameChange(ctx, adminID, 4, 3, true)
		assert.True(t, IsKind(err, KindNotFound))
	})
}

func TestStaffService_UpdateSiteCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.withStaffUsers()
	f.comps.On("UpdateSiteCapacity", mock.Anything, uint(2), 25).Return(domain.Site{ID: 2, Capacity: 25}, nil)

	site, err := f.staffService().UpdateSiteCapacity(ctx, siteID, 4, 2, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, site.Capacity)

	_, err = f.staffService().UpdateSiteCapacity(ctx, siteID, 4, 1, 25)
	assert.True(t, IsKind(err, KindAuth), "coordinators only manage their own site")

	_, err = f.staffService().UpdateSiteCapacity(ctx, adminID, 4, 2, -1)
	assert.True(t, IsKind(err, KindBadRequest))

	_, err = f.staffService().UpdateSiteCapacity(ctx, adminID, 4, 99, 5)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestStaffService_Courses(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.withStaffUsers()
	svc := f.staffService()

	_, err := svc.GetCourses(ctx, coachID, 4, uintPtr(8))
	assert.True(t, IsKind(err, KindAuth), "coaches are pinned to their university")

	_, err = svc.GetCourses(ctx, adminID, 4, nil)
	assert.True(t, IsKind(err, KindBadRequest))

	_, err = svc.UpdateCourses(ctx, coachID, 4, nil, []domain.Course{{Category: "Basket Weaving"}})
	assert.True(t, IsKind(err, KindBadRequest))

	f.settings.On("SaveCourses", mock.Anything, uint(4), uint(7), []domain.Course{
		{CompetitionID: 4, UniversityID: 7, Category: domain.CourseIntroduction, Name: "COMP1511"},
	}).Return([]domain.Course{{Category: domain.CourseIntroduction, Name: "COMP1511"}}, nil).Once()

	saved, err := svc.UpdateCourses(ctx, coachID, 4, nil, []domain.Course{{Category: domain.CourseIntroduction, Name: "COMP1511"}})
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestStaffService_CompetitionAlgorithm(t *testing.T) {
	f := newFixture()
	f.withStaffUsers()
	f.teams.On("ListTeams", mock.Anything, domain.ListFilter{CompetitionID: 4}).Return([]domain.Team{
		{ID: 1, Name: "A", Status: domain.TeamRegistered, SiteID: uintPtr(2), Members: []domain.StudentInfo{{UserID: 11}}},
		{ID: 2, Name: "B", Status: domain.TeamPending, Members: []domain.StudentInfo{{UserID: 12}}},
		{ID: 3, Name: "C", Status: domain.TeamRegistered, Members: []domain.StudentInfo{{UserID: 13}, {UserID: 14}}},
	}, nil)
	f.teams.On("SaveSeatAssignments", mock.Anything, uint(4), mock.MatchedBy(func(seats []domain.SeatAssignment) bool {
		return len(seats) == 2
	})).Return(nil).Once()

	result, err := f.staffService().CompetitionAlgorithm(context.Background(), adminID, 4)
	require.NoError(t, err)
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, "South-01", result.Assignments[0].Seat)
	assert.Equal(t, "North-01", result.Assignments[1].Seat)
	assert.Empty(t, result.Unplaced)
	assert.ElementsMatch(t, []uint{11, 13, 14}, f.notifier.Recipients())
}

func TestStaffService_ResolveTeamSiteChange(t *testing.T) {
	ctx := context.Background()
	seated := domain.Team{
		ID: 3, CompetitionID: 4, UniversityID: 7, Name: "Bits",
		SiteID: uintPtr(1), PendingSiteID: uintPtr(2), Seat: "North-01",
		Members: []domain.StudentInfo{{UserID: 11}},
	}

	tests := []struct {
		name       string
		team       domain.Team
		approve    bool
		wantFields []string
		wantSite   uint
		wantSeat   string
		wantKind   ErrorKind
	}{
		{
			name:       "approve moves the team and drops the old seat",
			team:       seated,
			approve:    true,
			wantFields: []string{repository.TeamPendingSite, repository.TeamSite, repository.TeamSeat},
			wantSite:   2,
			wantSeat:   "",
		},
		{
			name:       "reject keeps site and seat",
			team:       seated,
			approve:    false,
			wantFields: []string{repository.TeamPendingSite},
			wantSite:   1,
			wantSeat:   "North-01",
		},
		{
			name: "approving the current site keeps the seat",
			team: func() domain.Team {
				team := seated
				team.PendingSiteID = uintPtr(1)
				return team
			}(),
			approve:    true,
			wantFields: []string{repository.TeamPendingSite},
			wantSite:   1,
			wantSeat:   "North-01",
		},
		{
			name: "nothing pending",
			team: func() domain.Team {
				team := seated
				team.PendingSiteID = nil
				return team
			}(),
			approve:  true,
			wantKind: KindBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withStaffUsers()
			f.teams.On("FindTeam", mock.Anything, uint(3)).Return(tt.team, nil)

			var saved domain.Team
			if tt.wantKind == "" {
				f.teams.On("UpdateTeam", mock.Anything, mock.Anything, tt.wantFields).
					Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Team) }).
					Return(domain.Team{ID: 3}, nil).Once()
			}

			_, err := f.staffService().ResolveTeamSiteChange(ctx, coachID, 4, 3, tt.approve)
			if tt.wantKind != "" {
				assert.True(t, IsKind(err, tt.wantKind))
				f.teams.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			f.teams.AssertExpectations(t)
			require.NotNil(t, saved.SiteID)
			assert.Equal(t, tt.wantSite, *saved.SiteID)
			assert.Equal(t, tt.wantSeat, saved.Seat)
			assert.Nil(t, saved.PendingSiteID)
			assert.Equal(t, []uint{11}, f.notifier.Recipients())
		})
	}
}

func TestStaffService_UpdateTeam_Seats(t *testing.T) {
	ctx := context.Background()
	seated := domain.Team{
		ID: 3, CompetitionID: 4, UniversityID: 7, Name: "Bits",
		Status: domain.TeamRegistered, SiteID: uintPtr(1), Seat: "North-01",
		Members: []domain.StudentInfo{{UserID: 11}},
	}
	unregistered := domain.TeamUnregistered
	pending := domain.TeamPending
	registered := domain.TeamRegistered

	tests := []struct {
		name       string
		upd        TeamUpdate
		wantFields []string
		wantSeat   string
	}{
		{
			name:       "moving to another site drops the seat",
			upd:        TeamUpdate{SiteID: uintPtr(2)},
			wantFields: []string{repository.TeamSite, repository.TeamSeat},
		},
		{
			name:       "same site keeps the seat",
			upd:        TeamUpdate{SiteID: uintPtr(1)},
			wantFields: nil,
			wantSeat:   "North-01",
		},
		{
			name:       "unregistering drops the seat",
			upd:        TeamUpdate{Status: &unregistered},
			wantFields: []string{repository.TeamStatus, repository.TeamSeat},
		},
		{
			name:       "back to pending drops the seat",
			upd:        TeamUpdate{Status: &pending},
			wantFields: []string{repository.TeamStatus, repository.TeamSeat},
		},
		{
			name:       "staying registered keeps the seat",
			upd:        TeamUpdate{Status: &registered},
			wantFields: []string{repository.TeamStatus},
			wantSeat:   "North-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withStaffUsers()
			f.teams.On("FindTeam", mock.Anything, uint(3)).Return(seated, nil)

			var saved domain.Team
			f.teams.On("UpdateTeam", mock.Anything, mock.Anything, tt.wantFields).
				Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Team) }).
				Return(domain.Team{ID: 3}, nil).Once()

			_, err := f.staffService().UpdateTeam(ctx, adminID, 4, 3, tt.upd)
			require.NoError(t, err)
			f.teams.AssertExpectations(t)
			assert.Equal(t, tt.wantSeat, saved.Seat)
		})
	}
}

func TestStaffService_CreateTeam_MembersChangedConcurrently(t *testing.T) {
	f := newFixture()
	f.withStaffUsers()
	f.participants.On("FindStudent", mock.Anything, uint(4), uint(11)).
		Return(domain.StudentInfo{UserID: 11, UniversityID: 7}, nil)
	f.teams.On("CreateTeam", mock.Anything, mock.Anything, []uint{11}).
		Return(domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", repository.ErrParticipantNotFound)).Once()

	_, err := f.staffService().CreateTeam(context.Background(), coachID, 4, TeamDraft{Name: "Bits", MemberIDs: []uint{11}})

	assert.True(t, IsKind(err, KindConflict))
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)
	assert.Empty(t, f.notifier.Sent)
}

func TestStaffService_ListSeatAssignments(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   uint
		filter   domain.ListFilter
		wantKind ErrorKind
	}{
		{name: "admin sees every site", userID: adminID, filter: domain.ListFilter{CompetitionID: 4}},
		{name: "coach sees their university", userID: coachID, filter: domain.ListFilter{CompetitionID: 4, UniversityID: uintPtr(7)}},
		{name: "site coordinator sees their site", userID: siteID, filter: domain.ListFilter{CompetitionID: 4, SiteID: uintPtr(2)}},
		{name: "participants are rejected", userID: kidID, wantKind: KindAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withStaffUsers()
			seats := []domain.SeatAssignment{{TeamID: 9, TeamName: "Bits", SiteID: 2, SiteName: "South", Seat: "South-01"}}
			if tt.wantKind == "" {
				f.teams.On("ListSeatAssignments", mock.Anything, tt.filter).Return(seats, nil).Once()
			}

			got, err := f.staffService().ListSeatAssignments(ctx, tt.userID, 4)
			if tt.wantKind != "" {
				assert.True(t, IsKind(err, tt.wantKind))
				f.teams.AssertNotCalled(t, "ListSeatAssignments", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, seats, got)
			f.teams.AssertExpectations(t)
		})
	}
}
