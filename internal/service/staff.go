package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

var (
	ErrStaffNotFound = repository.ErrStaffNotFound
)

// StaffRegistration is what a staff member submits through the join wizard.
type StaffRegistration struct {
	Role         domain.CompetitionUserRole
	UniversityID *uint
	SiteID       *uint
	Bio          string
}

type TeamDraft struct {
	Name      string
	Level     domain.CompetitionLevel
	SiteID    *uint
	MemberIDs []uint
}

// TeamUpdate holds the team fields staff may change. Nil fields are left alone.
type TeamUpdate struct {
	Name   *string
	Level  *domain.CompetitionLevel
	SiteID *uint
	Status *domain.TeamStatus
}

// StaffService covers the competition operations performed by Admins, Coaches and
// Site-Coordinators. Every method resolves the caller's roles before touching data.
type StaffService struct {
	comps        CompetitionRepository
	participants ParticipantRepository
	teams        TeamRepository
	settings     SettingsRepository
	users        UserFinder
	notifier     Notifier
	now          func() time.Time
}

func NewStaffService(
	comps CompetitionRepository,
	participants ParticipantRepository,
	teams TeamRepository,
	settings SettingsRepository,
	users UserFinder,
	notifier Notifier,
) *StaffService {
	return &StaffService{
		comps:        comps,
		participants: participants,
		teams:        teams,
		settings:     settings,
		users:        users,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *StaffService) Register(ctx context.Context, userID uint, code string, reg StaffRegistration) (domain.StaffInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.StaffInfo{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if user.Type != domain.UserTypeStaff {
		return domain.StaffInfo{}, authError("only staff accounts can register as competition staff")
	}
	if reg.Role != domain.RoleCoach && reg.Role != domain.RoleSiteCoordinator {
		return domain.StaffInfo{}, badRequestError("cannot register as %q", reg.Role)
	}

	comp, err := s.comps.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrCompetitionNotFound) {
			return domain.StaffInfo{}, notFoundError(err, "no competition with code %q", code)
		}
		return domain.StaffInfo{}, fmt.Errorf("s.comps.FindByCode -> %w", err)
	}

	info := domain.StaffInfo{
		CompetitionID: comp.ID,
		UserID:        userID,
		Role:          reg.Role,
		Access:        domain.AccessPending,
		Bio:           reg.Bio,
	}

	switch {
	case reg.UniversityID != nil:
		info.UniversityID = *reg.UniversityID
	case user.UniversityID != nil:
		info.UniversityID = *user.UniversityID
	case reg.Role == domain.RoleCoach:
		return domain.StaffInfo{}, badRequestError("coaches must name a university")
	}

	if reg.Role == domain.RoleSiteCoordinator {
		if reg.SiteID == nil {
			return domain.StaffInfo{}, badRequestError("site coordinators must name a site")
		}
		if _, ok := comp.SiteByID(*reg.SiteID); !ok {
			return domain.StaffInfo{}, badRequestError("site %d is not part of %s", *reg.SiteID, comp.Name)
		}
		info.SiteID = reg.SiteID
	}

	created, err := s.participants.CreateStaff(ctx, info)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return domain.StaffInfo{}, conflictError(err, "already registered as %s for %s", reg.Role, comp.Name)
		}
		return domain.StaffInfo{}, fmt.Errorf("s.participants.CreateStaff -> %w", err)
	}

	notify(ctx, s.notifier, notificationsFor([]uint{userID}, comp.ID, nil, domain.NotificationWelcome,
		fmt.Sprintf("Your %s registration for %s is awaiting approval.", reg.Role, comp.Name))...)

	return created, nil
}

func (s *StaffService) ListStaff(ctx context.Context, userID, competitionID uint) ([]domain.StaffInfo, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return nil, err
	}

	f := domain.ListFilter{CompetitionID: competitionID}
	if !domain.HasRole(roles, domain.RoleAdmin) {
		uni, err := s.coachUniversity(ctx, competitionID, userID)
		if err != nil {
			return nil, err
		}
		f.UniversityID = &uni
	}

	staff, err := s.participants.ListStaff(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("s.participants.ListStaff -> %w", err)
	}

	return staff, nil
}

func (s *StaffService) UpdateStaffAccess(ctx context.Context, userID, competitionID, staffUserID uint, role domain.CompetitionUserRole, access domain.StaffAccess) (domain.StaffInfo, error) {
	comp, _, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin)
	if err != nil {
		return domain.StaffInfo{}, err
	}
	if !access.Valid() {
		return domain.StaffInfo{}, badRequestError("unknown access %q", access)
	}

	rows, err := s.participants.FindStaff(ctx, competitionID, staffUserID)
	if err != nil {
		return domain.StaffInfo{}, fmt.Errorf("s.participants.FindStaff -> %w", err)
	}

	var row *domain.StaffInfo
	for i := range rows {
		if rows[i].Role == role {
			row = &rows[i]
			break
		}
	}
	if row == nil {
		return domain.StaffInfo{}, notFoundError(ErrStaffNotFound, "user %d is not registered as %s", staffUserID, role)
	}
	if row.Role == domain.RoleAdmin && staffUserID == userID && access != domain.AccessAccepted {
		return domain.StaffInfo{}, badRequestError("admins cannot revoke their own access")
	}

	row.Access = access
	updated, err := s.participants.UpdateStaff(ctx, *row)
	if err != nil {
		return domain.StaffInfo{}, fmt.Errorf("s.participants.UpdateStaff -> %w", err)
	}

	notify(ctx, s.notifier, notificationsFor([]uint{staffUserID}, comp.ID, nil, domain.NotificationStaffAccess,
		fmt.Sprintf("Your %s access for %s is now %s.", role, comp.Name, access))...)

	return updated, nil
}

func (s *StaffService) ListStudents(ctx context.Context, userID, competitionID uint) ([]domain.StudentInfo, error) {
	f, err := s.viewScope(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}

	students, err := s.participants.ListStudents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("s.participants.ListStudents -> %w", err)
	}

	return students, nil
}

func (s *StaffService) UpdateStudent(ctx context.Context, userID, competitionID, studentUserID uint, patch domain.StudentInfo) (domain.StudentInfo, error) {
	comp, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return domain.StudentInfo{}, err
	}

	info, err := s.participants.FindStudent(ctx, competitionID, studentUserID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.StudentInfo{}, notFoundError(err, "user %d is not registered for competition %d", studentUserID, competitionID)
		}
		return domain.StudentInfo{}, fmt.Errorf("s.participants.FindStudent -> %w", err)
	}

	if err := s.canManage(ctx, roles, competitionID, userID, info.UniversityID); err != nil {
		return domain.StudentInfo{}, err
	}
	if patch.PreferredSiteID != nil {
		if _, ok := comp.SiteByID(*patch.PreferredSiteID); !ok {
			return domain.StudentInfo{}, badRequestError("site %d is not part of %s", *patch.PreferredSiteID, comp.Name)
		}
	}
	if err := applyStudentPatch(&info, patch); err != nil {
		return domain.StudentInfo{}, err
	}

	updated, err := s.participants.UpdateStudent(ctx, info)
	if err != nil {
		return domain.StudentInfo{}, fmt.Errorf("s.participants.UpdateStudent -> %w", err)
	}

	return updated, nil
}

func (s *StaffService) ListTeams(ctx context.Context, userID, competitionID uint) ([]domain.Team, error) {
	f, err := s.viewScope(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teams.ListTeams(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("s.teams.ListTeams -> %w", err)
	}

	return teams, nil
}

func (s *StaffService) CreateTeam(ctx context.Context, userID, competitionID uint, draft TeamDraft) (domain.Team, error) {
	comp, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return domain.Team{}, err
	}

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return domain.Team{}, badRequestError("team name is required")
	}
	if len(draft.MemberIDs) == 0 || len(draft.MemberIDs) > domain.MaxTeamSize {
		return domain.Team{}, badRequestError("a team has between 1 and %d members", domain.MaxTeamSize)
	}
	if draft.Level == "" {
		draft.Level = domain.LevelNoPreference
	}
	if !draft.Level.Valid() {
		return domain.Team{}, badRequestError("unknown competition level %q", draft.Level)
	}
	if draft.SiteID != nil {
		if _, ok := comp.SiteByID(*draft.SiteID); !ok {
			return domain.Team{}, badRequestError("site %d is not part of %s", *draft.SiteID, comp.Name)
		}
	}

	seen := make(map[uint]bool, len(draft.MemberIDs))
	var universityID uint
	for i, memberID := range draft.MemberIDs {
		if seen[memberID] {
			return domain.Team{}, badRequestError("user %d is listed twice", memberID)
		}
		seen[memberID] = true

		member, err := s.participants.FindStudent(ctx, competitionID, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrParticipantNotFound) {
				return domain.Team{}, notFoundError(err, "user %d is not registered for competition %d", memberID, competitionID)
			}
			return domain.Team{}, fmt.Errorf("s.participants.FindStudent -> %w", err)
		}
		if i == 0 {
			universityID = member.UniversityID
		} else if member.UniversityID != universityID {
			return domain.Team{}, badRequestError("team members must come from the same university")
		}
		if member.TeamID != nil {
			return domain.Team{}, conflictError(nil, "%s is already in a team", member.Name)
		}
	}

	if err := s.canManage(ctx, roles, competitionID, userID, universityID); err != nil {
		return domain.Team{}, err
	}

	team := domain.Team{
		CompetitionID: competitionID,
		UniversityID:  universityID,
		Name:          draft.Name,
		Level:         draft.Level,
		Status:        domain.TeamRegistered,
		SiteID:        draft.SiteID,
	}
	created, err := s.teams.CreateTeam(ctx, team, draft.MemberIDs)
	if err != nil {
		// A member joined another team or withdrew after the checks above.
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Team{}, conflictError(err, "team members changed while creating %s", draft.Name)
		}
		return domain.Team{}, fmt.Errorf("s.teams.CreateTeam -> %w", err)
	}

	notify(ctx, s.notifier, notificationsFor(draft.MemberIDs, comp.ID, &created.ID, domain.NotificationTeamStatus,
		fmt.Sprintf("You have been placed in team %s.", created.Name))...)

	return created, nil
}

func (s *StaffService) UpdateTeam(ctx context.Context, userID, competitionID, teamID uint, upd TeamUpdate) (domain.Team, error) {
	comp, team, err := s.managedTeam(ctx, userID, competitionID, teamID)
	if err != nil {
		return domain.Team{}, err
	}

	var fields []string
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return domain.Team{}, badRequestError("team name is required")
		}
		team.Name = name
		fields = append(fields, repository.TeamName)
	}
	if upd.Level != nil {
		if !upd.Level.Valid() {
			return domain.Team{}, badRequestError("unknown competition level %q", *upd.Level)
		}
		team.Level = *upd.Level
		fields = append(fields, repository.TeamLevel)
	}
	if upd.SiteID != nil {
		if _, ok := comp.SiteByID(*upd.SiteID); !ok {
			return domain.Team{}, badRequestError("site %d is not part of %s", *upd.SiteID, comp.Name)
		}
		fields = append(fields, moveTeam(&team, *upd.SiteID)...)
	}
	statusChanged := false
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return domain.Team{}, badRequestError("unknown team status %q", *upd.Status)
		}
		statusChanged = team.Status != *upd.Status
		team.Status = *upd.Status
		fields = append(fields, repository.TeamStatus)
		if team.Status != domain.TeamRegistered && team.Seat != "" {
			team.Seat = ""
			fields = append(fields, repository.TeamSeat)
		}
	}

	updated, err := s.teams.UpdateTeam(ctx, team, fields...)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.teams.UpdateTeam -> %w", err)
	}

	if statusChanged {
		notify(ctx, s.notifier, notificationsFor(team.MemberIDs(), comp.ID, &team.ID, domain.NotificationTeamStatus,
			fmt.Sprintf("Team %s is now %s.", team.Name, team.Status))...)
	}

	return updated, nil
}

func (s *StaffService) ResolveTeamNameChange(ctx context.Context, userID, competitionID, teamID uint, approve bool) (domain.Team, error) {
	comp, team, err := s.managedTeam(ctx, userID, competitionID, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	if team.PendingName == "" {
		return domain.Team{}, badRequestError("team %s has no pending name change", team.Name)
	}

	message := fmt.Sprintf("The request to rename %s to %s was rejected.", team.Name, team.PendingName)
	if approve {
		message = fmt.Sprintf("Team %s is now called %s.", team.Name, team.PendingName)
		team.Name = team.PendingName
	}
	team.PendingName = ""

	updated, err := s.teams.UpdateTeam(ctx, team, repository.TeamName, repository.TeamPendingName)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.teams.UpdateTeam -> %w", err)
	}

	notify(ctx, s.notifier, notificationsFor(team.MemberIDs(), comp.ID, &team.ID, domain.NotificationTeamName, message)...)

	return updated, nil
}

func (s *StaffService) ResolveTeamSiteChange(ctx context.Context, userID, competitionID, teamID uint, approve bool) (domain.Team, error) {
	comp, team, err := s.managedTeam(ctx, userID, competitionID, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	if team.PendingSiteID == nil {
		return domain.Team{}, badRequestError("team %s has no pending site change", team.Name)
	}

	siteName := fmt.Sprintf("site %d", *team.PendingSiteID)
	if site, ok := comp.SiteByID(*team.PendingSiteID); ok {
		siteName = site.Name
	}

	fields := []string{repository.TeamPendingSite}
	message := fmt.Sprintf("The request to move %s to %s was rejected.", team.Name, siteName)
	if approve {
		message = fmt.Sprintf("Team %s will compete at %s.", team.Name, siteName)
		fields = append(fields, moveTeam(&team, *team.PendingSiteID)...)
	}
	team.PendingSiteID = nil

	updated, err := s.teams.UpdateTeam(ctx, team, fields...)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.teams.UpdateTeam -> %w", err)
	}

	notify(ctx, s.notifier, notificationsFor(team.MemberIDs(), comp.ID, &team.ID, domain.NotificationTeamSite, message)...)

	return updated, nil
}

func (s *StaffService) GetCourses(ctx context.Context, userID, competitionID uint, universityID *uint) ([]domain.Course, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return nil, err
	}

	uni, err := s.resolveUniversity(ctx, roles, competitionID, userID, universityID)
	if err != nil {
		return nil, err
	}

	courses, err := s.settings.ListCourses(ctx, competitionID, uni)
	if err != nil {
		return nil, fmt.Errorf("s.settings.ListCourses -> %w", err)
	}

	return courses, nil
}

func (s *StaffService) UpdateCourses(ctx context.Context, userID, competitionID uint, universityID *uint, courses []domain.Course) ([]domain.Course, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return nil, err
	}

	uni, err := s.resolveUniversity(ctx, roles, competitionID, userID, universityID)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.CourseCategory]bool, len(courses))
	for i, c := range courses {
		if !c.Category.Valid() {
			return nil, badRequestError("unknown course category %q", c.Category)
		}
		if seen[c.Category] {
			return nil, badRequestError("course category %q given twice", c.Category)
		}
		seen[c.Category] = true
		courses[i].CompetitionID = competitionID
		courses[i].UniversityID = uni
	}

	saved, err := s.settings.SaveCourses(ctx, competitionID, uni, courses)
	if err != nil {
		return nil, fmt.Errorf("s.settings.SaveCourses -> %w", err)
	}

	return saved, nil
}

func (s *StaffService) GetRegoToggles(ctx context.Context, userID, competitionID uint, universityID *uint) (domain.RegoToggles, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID)
	if err != nil {
		return domain.RegoToggles{}, err
	}

	uni, err := s.resolveUniversity(ctx, roles, competitionID, userID, universityID)
	if err != nil {
		return domain.RegoToggles{}, err
	}

	toggles, err := s.settings.FindRegoToggles(ctx, competitionID, uni)
	if err != nil {
		return domain.RegoToggles{}, fmt.Errorf("s.settings.FindRegoToggles -> %w", err)
	}

	return toggles, nil
}

func (s *StaffService) UpdateRegoToggles(ctx context.Context, userID, competitionID uint, universityID *uint, toggles domain.RegoToggles) (domain.RegoToggles, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return domain.RegoToggles{}, err
	}

	uni, err := s.resolveUniversity(ctx, roles, competitionID, userID, universityID)
	if err != nil {
		return domain.RegoToggles{}, err
	}

	toggles.CompetitionID = competitionID
	toggles.UniversityID = uni
	saved, err := s.settings.SaveRegoToggles(ctx, toggles)
	if err != nil {
		return domain.RegoToggles{}, fmt.Errorf("s.settings.SaveRegoToggles -> %w", err)
	}

	return saved, nil
}

func (s *StaffService) UpdateSiteCapacity(ctx context.Context, userID, competitionID, siteID uint, capacity int) (domain.Site, error) {
	comp, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleSiteCoordinator)
	if err != nil {
		return domain.Site{}, err
	}
	if _, ok := comp.SiteByID(siteID); !ok {
		return domain.Site{}, notFoundError(repository.ErrSiteNotFound, "site %d is not part of %s", siteID, comp.Name)
	}
	if capacity < 0 {
		return domain.Site{}, badRequestError("capacity cannot be negative")
	}

	if !domain.HasRole(roles, domain.RoleAdmin) {
		rows, err := s.participants.FindStaff(ctx, competitionID, userID)
		if err != nil {
			return domain.Site{}, fmt.Errorf("s.participants.FindStaff -> %w", err)
		}
		row, ok := acceptedStaff(rows, domain.RoleSiteCoordinator)
		if !ok || row.SiteID == nil || *row.SiteID != siteID {
			return domain.Site{}, authError("you do not coordinate site %d", siteID)
		}
	}

	site, err := s.comps.UpdateSiteCapacity(ctx, siteID, capacity)
	if err != nil {
		return domain.Site{}, fmt.Errorf("s.comps.UpdateSiteCapacity -> %w", err)
	}

	return site, nil
}

func (s *StaffService) GetAnnouncement(ctx context.Context, userID, competitionID uint, universityID *uint) (domain.Announcement, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID)
	if err != nil {
		return domain.Announcement{}, err
	}

	uni, err := s.resolveUniversity(ctx, roles, competitionID, userID, universityID)
	if err != nil {
		return domain.Announcement{}, err
	}

	a, err := s.settings.FindAnnouncement(ctx, competitionID, uni)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.settings.FindAnnouncement -> %w", err)
	}

	return a, nil
}

func (s *StaffService) UpdateAnnouncement(ctx context.Context, userID, competitionID uint, universityID *uint, message string) (domain.Announcement, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return domain.Announcement{}, err
	}

	uni, err := s.resolveUniversity(ctx, roles, competitionID, userID, universityID)
	if err != nil {
		return domain.Announcement{}, err
	}

	saved, err := s.settings.SaveAnnouncement(ctx, domain.Announcement{
		CompetitionID: competitionID,
		UniversityID:  uni,
		Message:       message,
		UpdatedAt:     s.now(),
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("s.settings.SaveAnnouncement -> %w", err)
	}

	return saved, nil
}

// CompetitionAlgorithm seats every registered team and stores the result.
func (s *StaffService) CompetitionAlgorithm(ctx context.Context, userID, competitionID uint) (domain.AllocationResult, error) {
	comp, _, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin)
	if err != nil {
		return domain.AllocationResult{}, err
	}

	teams, err := s.teams.ListTeams(ctx, domain.ListFilter{CompetitionID: competitionID})
	if err != nil {
		return domain.AllocationResult{}, fmt.Errorf("s.teams.ListTeams -> %w", err)
	}

	registered := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if t.Status == domain.TeamRegistered {
			registered = append(registered, t)
		}
	}

	result := AssignSeats(registered, comp.Sites)
	if err := s.teams.SaveSeatAssignments(ctx, competitionID, result.Assignments); err != nil {
		return domain.AllocationResult{}, fmt.Errorf("s.teams.SaveSeatAssignments -> %w", err)
	}

	members := make(map[uint][]uint, len(registered))
	for _, t := range registered {
		members[t.ID] = t.MemberIDs()
	}
	var ns []domain.Notification
	for _, a := range result.Assignments {
		teamID := a.TeamID
		ns = append(ns, notificationsFor(members[a.TeamID], comp.ID, &teamID, domain.NotificationSeat,
			fmt.Sprintf("Team %s is seated at %s (%s).", a.TeamName, a.SiteName, a.Seat))...)
	}
	notify(ctx, s.notifier, ns...)

	return result, nil
}

func (s *StaffService) ListSeatAssignments(ctx context.Context, userID, competitionID uint) ([]domain.SeatAssignment, error) {
	f, err := s.viewScope(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}

	seats, err := s.teams.ListSeatAssignments(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("s.teams.ListSeatAssignments -> %w", err)
	}

	return seats, nil
}

// viewScope returns the filter for listings: Admins see everything, Coaches their
// university and Site-Coordinators their site.
func (s *StaffService) viewScope(ctx context.Context, userID, competitionID uint) (domain.ListFilter, error) {
	_, roles, err := requireRole(ctx, s.comps, competitionID, userID,
		domain.RoleAdmin, domain.RoleCoach, domain.RoleSiteCoordinator)
	if err != nil {
		return domain.ListFilter{}, err
	}

	f := domain.ListFilter{CompetitionID: competitionID}
	if domain.HasRole(roles, domain.RoleAdmin) {
		return f, nil
	}

	rows, err := s.participants.FindStaff(ctx, competitionID, userID)
	if err != nil {
		return domain.ListFilter{}, fmt.Errorf("s.participants.FindStaff -> %w", err)
	}
	if row, ok := acceptedStaff(rows, domain.RoleCoach); ok {
		uni := row.UniversityID
		f.UniversityID = &uni
		return f, nil
	}
	if row, ok := acceptedStaff(rows, domain.RoleSiteCoordinator); ok && row.SiteID != nil {
		site := *row.SiteID
		f.SiteID = &site
		return f, nil
	}

	return domain.ListFilter{}, authError("user %d has no staff scope in competition %d", userID, competitionID)
}

func (s *StaffService) coachUniversity(ctx context.Context, competitionID, userID uint) (uint, error) {
	rows, err := s.participants.FindStaff(ctx, competitionID, userID)
	if err != nil {
		return 0, fmt.Errorf("s.participants.FindStaff -> %w", err)
	}
	row, ok := acceptedStaff(rows, domain.RoleCoach)
	if !ok {
		return 0, authError("user %d is not a coach in competition %d", userID, competitionID)
	}
	return row.UniversityID, nil
}

// canManage allows Admins everything and Coaches their own university.
func (s *StaffService) canManage(ctx context.Context, roles []domain.CompetitionUserRole, competitionID, userID, universityID uint) error {
	if domain.HasRole(roles, domain.RoleAdmin) {
		return nil
	}
	uni, err := s.coachUniversity(ctx, competitionID, userID)
	if err != nil {
		return err
	}
	if uni != universityID {
		return authError("coaches can only manage their own university")
	}
	return nil
}

func (s *StaffService) managedTeam(ctx context.Context, userID, competitionID, teamID uint) (domain.Competition, domain.Team, error) {
	comp, roles, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleAdmin, domain.RoleCoach)
	if err != nil {
		return domain.Competition{}, domain.Team{}, err
	}

	team, err := s.teams.FindTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return domain.Competition{}, domain.Team{}, notFoundError(err, "team %d not found", teamID)
		}
		return domain.Competition{}, domain.Team{}, fmt.Errorf("s.teams.FindTeam -> %w", err)
	}
	if team.CompetitionID != competitionID {
		return domain.Competition{}, domain.Team{}, notFoundError(ErrTeamNotFound, "team %d not found", teamID)
	}

	if err := s.canManage(ctx, roles, competitionID, userID, team.UniversityID); err != nil {
		return domain.Competition{}, domain.Team{}, err
	}

	return comp, team, nil
}

// resolveUniversity picks the university a per-university setting refers to. Admins
// may name any university. Everyone else is pinned to their own.
func (s *StaffService) resolveUniversity(ctx context.Context, roles []domain.CompetitionUserRole, competitionID, userID uint, requested *uint) (uint, error) {
	isAdmin := domain.HasRole(roles, domain.RoleAdmin)
	if isAdmin && requested != nil {
		return *requested, nil
	}

	own, found, err := s.ownUniversity(ctx, roles, competitionID, userID)
	if err != nil {
		return 0, err
	}
	if !found {
		if isAdmin {
			return 0, badRequestError("university_id is required")
		}
		return 0, authError("user %d has no university in competition %d", userID, competitionID)
	}
	if requested != nil && *requested != own {
		return 0, authError("you can only access your own university")
	}

	return own, nil
}

func (s *StaffService) ownUniversity(ctx context.Context, roles []domain.CompetitionUserRole, competitionID, userID uint) (uint, bool, error) {
	rows, err := s.participants.FindStaff(ctx, competitionID, userID)
	if err != nil {
		return 0, false, fmt.Errorf("s.participants.FindStaff -> %w", err)
	}
	if row, ok := acceptedStaff(rows, domain.RoleCoach); ok {
		return row.UniversityID, true, nil
	}
	if row, ok := acceptedStaff(rows, domain.RoleSiteCoordinator); ok && row.UniversityID != 0 {
		return row.UniversityID, true, nil
	}

	if domain.HasRole(roles, domain.RoleParticipant) {
		info, err := s.participants.FindStudent(ctx, competitionID, userID)
		if err != nil {
			return 0, false, fmt.Errorf("s.participants.FindStudent -> %w", err)
		}
		return info.UniversityID, true, nil
	}

	return 0, false, nil
}

// moveTeam puts team at siteID and returns the fields that changed. A seat belongs to
// the site it was allocated at, so moving drops it until the next allocation run.
func moveTeam(team *domain.Team, siteID uint) []string {
	if team.SiteID != nil && *team.SiteID == siteID {
		return nil
	}

	team.SiteID = &siteID
	if team.Seat == "" {
		return []string{repository.TeamSite}
	}
	team.Seat = ""
	return []string{repository.TeamSite, repository.TeamSeat}
}
