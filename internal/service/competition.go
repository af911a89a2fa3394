package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

var (
	ErrCompetitionNotFound = repository.ErrCompetitionNotFound
)

const codeAttempts = 3

type CompetitionService struct {
	comps   CompetitionRepository
	users   UserFinder
	newCode func() string
}

func NewCompetitionService(comps CompetitionRepository, users UserFinder) *CompetitionService {
	return &CompetitionService{
		comps:   comps,
		users:   users,
		newCode: newJoinCode,
	}
}

// newJoinCode returns an 8 character upper-case code shared with participants.
func newJoinCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func validateSchedule(comp domain.Competition) error {
	if strings.TrimSpace(comp.Name) == "" {
		return badRequestError("competition name is required")
	}
	if comp.StartDate.IsZero() || comp.GeneralRegDeadline.IsZero() {
		return badRequestError("start date and general registration deadline are required")
	}
	if !comp.GeneralRegDeadline.Before(comp.StartDate) {
		return badRequestError("general registration deadline must precede the start date")
	}
	if comp.EarlyRegDeadline != nil && comp.EarlyRegDeadline.After(comp.GeneralRegDeadline) {
		return badRequestError("early registration deadline must not be after the general deadline")
	}
	return nil
}

func (s *CompetitionService) CreateCompetition(ctx context.Context, userID uint, comp domain.Competition) (domain.Competition, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if user.Type != domain.UserTypeStaff && user.Type != domain.UserTypeSystemAdmin {
		return domain.Competition{}, authError("only staff can create competitions")
	}

	if err := validateSchedule(comp); err != nil {
		return domain.Competition{}, err
	}
	if len(comp.Sites) == 0 {
		return domain.Competition{}, badRequestError("a competition needs at least one site")
	}
	for i, site := range comp.Sites {
		if strings.TrimSpace(site.Name) == "" {
			return domain.Competition{}, badRequestError("site %d has no name", i)
		}
		if site.Capacity < 0 {
			return domain.Competition{}, badRequestError("site %q has a negative capacity", site.Name)
		}
		comp.Sites[i].ID = 0
	}

	admin := domain.StaffInfo{
		UserID: userID,
		Role:   domain.RoleAdmin,
		Access: domain.AccessAccepted,
	}
	if user.UniversityID != nil {
		admin.UniversityID = *user.UniversityID
	}

	comp.ID = 0
	for attempt := 0; ; attempt++ {
		comp.Code = s.newCode()

		created, err := s.comps.Create(ctx, comp, admin)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, repository.ErrCompetitionCodeExists) || attempt+1 >= codeAttempts {
			return domain.Competition{}, fmt.Errorf("s.comps.Create -> %w", err)
		}
	}
}

// UpdateCompetition changes name, region, dates and information. Code and sites are kept.
func (s *CompetitionService) UpdateCompetition(ctx context.Context, userID uint, upd domain.Competition) (domain.Competition, error) {
	comp, _, err := requireRole(ctx, s.comps, upd.ID, userID, domain.RoleAdmin)
	if err != nil {
		return domain.Competition{}, err
	}

	comp.Name = upd.Name
	comp.Region = upd.Region
	comp.Information = upd.Information
	comp.EarlyRegDeadline = upd.EarlyRegDeadline
	comp.GeneralRegDeadline = upd.GeneralRegDeadline
	comp.StartDate = upd.StartDate
	if err := validateSchedule(comp); err != nil {
		return domain.Competition{}, err
	}

	updated, err := s.comps.Update(ctx, comp)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("s.comps.Update -> %w", err)
	}

	return updated, nil
}

func (s *CompetitionService) GetCompetition(ctx context.Context, userID, competitionID uint) (domain.CompetitionSummary, error) {
	comp, roles, err := requireRole(ctx, s.comps, competitionID, userID)
	if err != nil {
		return domain.CompetitionSummary{}, err
	}

	return domain.CompetitionSummary{Competition: comp, Roles: roles}, nil
}

func (s *CompetitionService) ListCompetitions(ctx context.Context, userID uint) ([]domain.CompetitionSummary, error) {
	comps, err := s.comps.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.comps.ListByUser -> %w", err)
	}

	summaries := make([]domain.CompetitionSummary, 0, len(comps))
	for _, comp := range comps {
		roles, err := s.comps.Roles(ctx, comp.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("s.comps.Roles -> %w", err)
		}
		summaries = append(summaries, domain.CompetitionSummary{Competition: comp, Roles: roles})
	}

	return summaries, nil
}

func (s *CompetitionService) GetRoles(ctx context.Context, userID, competitionID uint) ([]domain.CompetitionUserRole, error) {
	if _, err := s.comps.FindByID(ctx, competitionID); err != nil {
		if errors.Is(err, repository.ErrCompetitionNotFound) {
			return nil, notFoundError(err, "competition %d not found", competitionID)
		}
		return nil, fmt.Errorf("s.comps.FindByID -> %w", err)
	}

	roles, err := s.comps.Roles(ctx, competitionID, userID)
	if err != nil {
		return nil, fmt.Errorf("s.comps.Roles -> %w", err)
	}

	return roles, nil
}

// FindByCode is the public lookup behind the join wizards.
func (s *CompetitionService) FindByCode(ctx context.Context, code string) (domain.Competition, error) {
	comp, err := s.comps.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrCompetitionNotFound) {
			return domain.Competition{}, notFoundError(err, "no competition with code %q", code)
		}
		return domain.Competition{}, fmt.Errorf("s.comps.FindByCode -> %w", err)
	}

	return comp, nil
}

func (s *CompetitionService) ListSites(ctx context.Context, userID, competitionID uint) ([]domain.Site, error) {
	if _, _, err := requireRole(ctx, s.comps, competitionID, userID); err != nil {
		return nil, err
	}

	sites, err := s.comps.ListSites(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("s.comps.ListSites -> %w", err)
	}

	return sites, nil
}

// registrationClosed reports whether now is past the competition's general deadline.
func registrationClosed(comp domain.Competition, now time.Time) bool {
	return !comp.RegistrationOpen(now)
}
