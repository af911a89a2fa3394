package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrTeamNotFound        = repository.ErrTeamNotFound
)

// StudentService covers what a participant does to their own registration.
type StudentService struct {
	comps        CompetitionRepository
	participants ParticipantRepository
	teams        TeamRepository
	settings     SettingsRepository
	users        UserFinder
	notifier     Notifier
	now          func() time.Time
}

func NewStudentService(
	comps CompetitionRepository,
	participants ParticipantRepository,
	teams TeamRepository,
	settings SettingsRepository,
	users UserFinder,
	notifier Notifier,
) *StudentService {
	return &StudentService{
		comps:        comps,
		participants: participants,
		teams:        teams,
		settings:     settings,
		users:        users,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *StudentService) Register(ctx context.Context, userID uint, code string, info domain.StudentInfo) (domain.StudentInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.StudentInfo{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if user.Type != domain.UserTypeStudent {
		return domain.StudentInfo{}, authError("only students can register as participants")
	}
	if user.UniversityID == nil {
		return domain.StudentInfo{}, badRequestError("student %d has no university", userID)
	}

	comp, err := s.comps.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrCompetitionNotFound) {
			return domain.StudentInfo{}, notFoundError(err, "no competition with code %q", code)
		}
		return domain.StudentInfo{}, fmt.Errorf("s.comps.FindByCode -> %w", err)
	}
	if registrationClosed(comp, s.now()) {
		return domain.StudentInfo{}, badRequestError("registration for %s closed on %s", comp.Name, comp.GeneralRegDeadline.Format(time.DateOnly))
	}

	toggles, err := s.settings.FindRegoToggles(ctx, comp.ID, *user.UniversityID)
	if err != nil {
		return domain.StudentInfo{}, fmt.Errorf("s.settings.FindRegoToggles -> %w", err)
	}
	if !toggles.StudentRegoOpen {
		return domain.StudentInfo{}, authError("student registration is closed for your university")
	}

	if info.Level == "" {
		info.Level = domain.LevelNoPreference
	}
	if !info.Level.Valid() {
		return domain.StudentInfo{}, badRequestError("unknown competition level %q", info.Level)
	}
	if !toggles.SiteSelection {
		info.PreferredSiteID = nil
	} else if info.PreferredSiteID != nil {
		if _, ok := comp.SiteByID(*info.PreferredSiteID); !ok {
			return domain.StudentInfo{}, badRequestError("site %d is not part of %s", *info.PreferredSiteID, comp.Name)
		}
	}

	info.ID = 0
	info.CompetitionID = comp.ID
	info.UserID = userID
	info.UniversityID = *user.UniversityID
	info.TeamID = nil

	created, err := s.participants.CreateStudent(ctx, info)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return domain.StudentInfo{}, conflictError(err, "already registered for %s", comp.Name)
		}
		return domain.StudentInfo{}, fmt.Errorf("s.participants.CreateStudent -> %w", err)
	}

	notify(ctx, s.notifier, notificationsFor([]uint{userID}, comp.ID, nil, domain.NotificationWelcome,
		fmt.Sprintf("Welcome to %s! Your coach will place you in a team.", comp.Name))...)

	return created, nil
}

func (s *StudentService) Withdraw(ctx context.Context, userID, competitionID uint) error {
	comp, _, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleParticipant)
	if err != nil {
		return err
	}

	info, err := s.findStudent(ctx, competitionID, userID)
	if err != nil {
		return err
	}

	var team domain.Team
	var remaining []uint
	if info.TeamID != nil {
		team, err = s.teams.FindTeam(ctx, *info.TeamID)
		if err != nil {
			return fmt.Errorf("s.teams.FindTeam -> %w", err)
		}
		for _, id := range team.MemberIDs() {
			if id != userID {
				remaining = append(remaining, id)
			}
		}
	}

	if err := s.participants.WithdrawStudent(ctx, competitionID, userID); err != nil {
		return fmt.Errorf("s.participants.WithdrawStudent -> %w", err)
	}

	if len(remaining) > 0 {
		notify(ctx, s.notifier, notificationsFor(remaining, comp.ID, &team.ID, domain.NotificationWithdrawal,
			fmt.Sprintf("%s withdrew from team %s. The team is pending again.", info.Name, team.Name))...)
	}

	return nil
}

func (s *StudentService) GetStudentInfo(ctx context.Context, userID, competitionID uint) (domain.StudentInfo, error) {
	if _, _, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleParticipant); err != nil {
		return domain.StudentInfo{}, err
	}

	return s.findStudent(ctx, competitionID, userID)
}

// UpdateStudentInfo changes the fields a participant may edit on their own registration.
func (s *StudentService) UpdateStudentInfo(ctx context.Context, userID, competitionID uint, patch domain.StudentInfo) (domain.StudentInfo, error) {
	comp, _, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleParticipant)
	if err != nil {
		return domain.StudentInfo{}, err
	}

	info, err := s.findStudent(ctx, competitionID, userID)
	if err != nil {
		return domain.StudentInfo{}, err
	}

	if patch.PreferredSiteID != nil {
		toggles, err := s.settings.FindRegoToggles(ctx, competitionID, info.UniversityID)
		if err != nil {
			return domain.StudentInfo{}, fmt.Errorf("s.settings.FindRegoToggles -> %w", err)
		}
		if !toggles.SiteSelection {
			return domain.StudentInfo{}, authError("site selection is disabled for your university")
		}
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

func (s *StudentService) GetTeamDetails(ctx context.Context, userID, competitionID uint) (domain.TeamDetails, error) {
	comp, team, err := s.ownTeam(ctx, userID, competitionID)
	if err != nil {
		return domain.TeamDetails{}, err
	}

	details := domain.TeamDetails{Team: team}
	if team.SiteID != nil {
		if site, ok := comp.SiteByID(*team.SiteID); ok {
			details.SiteName = site.Name
		}
	}

	return details, nil
}

func (s *StudentService) RequestTeamNameChange(ctx context.Context, userID, competitionID uint, name string) (domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Team{}, badRequestError("team name is required")
	}

	comp, team, err := s.ownTeam(ctx, userID, competitionID)
	if err != nil {
		return domain.Team{}, err
	}

	toggles, err := s.settings.FindRegoToggles(ctx, competitionID, team.UniversityID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.settings.FindRegoToggles -> %w", err)
	}
	if !toggles.TeamNameChanges {
		return domain.Team{}, authError("team name changes are disabled for your university")
	}

	team.PendingName = name
	updated, err := s.teams.UpdateTeam(ctx, team, repository.TeamPendingName)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.teams.UpdateTeam -> %w", err)
	}

	s.notifyCoaches(ctx, comp.ID, team, domain.NotificationTeamName,
		fmt.Sprintf("Team %s requested to be renamed to %s.", team.Name, name))

	return updated, nil
}

func (s *StudentService) RequestSiteChange(ctx context.Context, userID, competitionID, siteID uint) (domain.Team, error) {
	comp, team, err := s.ownTeam(ctx, userID, competitionID)
	if err != nil {
		return domain.Team{}, err
	}

	toggles, err := s.settings.FindRegoToggles(ctx, competitionID, team.UniversityID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.settings.FindRegoToggles -> %w", err)
	}
	if !toggles.SiteChanges {
		return domain.Team{}, authError("site changes are disabled for your university")
	}

	site, ok := comp.SiteByID(siteID)
	if !ok {
		return domain.Team{}, badRequestError("site %d is not part of %s", siteID, comp.Name)
	}

	team.PendingSiteID = &site.ID
	updated, err := s.teams.UpdateTeam(ctx, team, repository.TeamPendingSite)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.teams.UpdateTeam -> %w", err)
	}

	s.notifyCoaches(ctx, comp.ID, team, domain.NotificationTeamSite,
		fmt.Sprintf("Team %s requested to move to site %s.", team.Name, site.Name))

	return updated, nil
}

func (s *StudentService) findStudent(ctx context.Context, competitionID, userID uint) (domain.StudentInfo, error) {
	info, err := s.participants.FindStudent(ctx, competitionID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.StudentInfo{}, notFoundError(err, "user %d is not registered for competition %d", userID, competitionID)
		}
		return domain.StudentInfo{}, fmt.Errorf("s.participants.FindStudent -> %w", err)
	}

	return info, nil
}

func (s *StudentService) ownTeam(ctx context.Context, userID, competitionID uint) (domain.Competition, domain.Team, error) {
	comp, _, err := requireRole(ctx, s.comps, competitionID, userID, domain.RoleParticipant)
	if err != nil {
		return domain.Competition{}, domain.Team{}, err
	}

	info, err := s.findStudent(ctx, competitionID, userID)
	if err != nil {
		return domain.Competition{}, domain.Team{}, err
	}
	if info.TeamID == nil {
		return domain.Competition{}, domain.Team{}, notFoundError(nil, "you are not in a team yet")
	}

	team, err := s.teams.FindTeam(ctx, *info.TeamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return domain.Competition{}, domain.Team{}, notFoundError(err, "team %d not found", *info.TeamID)
		}
		return domain.Competition{}, domain.Team{}, fmt.Errorf("s.teams.FindTeam -> %w", err)
	}

	return comp, team, nil
}

func (s *StudentService) notifyCoaches(ctx context.Context, competitionID uint, team domain.Team, typ domain.NotificationType, message string) {
	uni := team.UniversityID
	staff, err := s.participants.ListStaff(ctx, domain.ListFilter{CompetitionID: competitionID, UniversityID: &uni})
	if err != nil {
		zap.L().Warn("failed to look up coaches to notify", zap.Uint("team_id", team.ID), zap.Error(err))
		return
	}

	var coaches []uint
	for _, st := range staff {
		if st.Role == domain.RoleCoach && st.Access == domain.AccessAccepted {
			coaches = append(coaches, st.UserID)
		}
	}

	notify(ctx, s.notifier, notificationsFor(coaches, competitionID, &team.ID, typ, message)...)
}

// applyStudentPatch copies the participant-editable fields of patch onto info.
func applyStudentPatch(info *domain.StudentInfo, patch domain.StudentInfo) error {
	if patch.Level != "" {
		if !patch.Level.Valid() {
			return badRequestError("unknown competition level %q", patch.Level)
		}
		info.Level = patch.Level
	}
	if patch.DegreeYear < 0 {
		return badRequestError("degree year cannot be negative")
	}

	info.ICPCEligible = patch.ICPCEligible
	info.BoersenEligible = patch.BoersenEligible
	info.DegreeYear = patch.DegreeYear
	info.DegreeField = patch.DegreeField
	info.IsRemote = patch.IsRemote
	info.Bio = patch.Bio
	if patch.PreferredSiteID != nil {
		info.PreferredSiteID = patch.PreferredSiteID
	}

	return nil
}
