package repository

import (
	"context"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

var (
	ErrCompetitionNotFound   = dao.ErrCompetitionNotFound
	ErrCompetitionCodeExists = dao.ErrCompetitionCodeExists
	ErrSiteNotFound          = dao.ErrSiteNotFound
)

type CompetitionDAO interface {
	Insert(ctx context.Context, comp dao.Competition, admin dao.Staff) (dao.Competition, error)
	Update(ctx context.Context, comp dao.Competition) (dao.Competition, error)
	FindByID(ctx context.Context, id uint) (dao.Competition, error)
	FindByCode(ctx context.Context, code string) (dao.Competition, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Competition, error)
	Roles(ctx context.Context, competitionID, userID uint) ([]string, error)
	FindSite(ctx context.Context, siteID uint) (dao.Site, error)
	ListSites(ctx context.Context, competitionID uint) ([]dao.Site, error)
	UpdateSiteCapacity(ctx context.Context, siteID uint, capacity int) (dao.Site, error)
}

type CompetitionRepository struct {
	dao CompetitionDAO
}

func NewCompetitionRepository(dao CompetitionDAO) *CompetitionRepository {
	return &CompetitionRepository{
		dao: dao,
	}
}

func (r *CompetitionRepository) Create(ctx context.Context, comp domain.Competition, admin domain.StaffInfo) (domain.Competition, error) {
	created, err := r.dao.Insert(ctx, competitionDomainToDao(comp), staffDomainToDao(admin))
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return competitionDaoToDomain(created), nil
}

func (r *CompetitionRepository) Update(ctx context.Context, comp domain.Competition) (domain.Competition, error) {
	updated, err := r.dao.Update(ctx, competitionDomainToDao(comp))
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return competitionDaoToDomain(updated), nil
}

func (r *CompetitionRepository) FindByID(ctx context.Context, id uint) (domain.Competition, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return competitionDaoToDomain(found), nil
}

func (r *CompetitionRepository) FindByCode(ctx context.Context, code string) (domain.Competition, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return competitionDaoToDomain(found), nil
}

func (r *CompetitionRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Competition, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	comps := make([]domain.Competition, len(found))
	for i, c := range found {
		comps[i] = competitionDaoToDomain(c)
	}

	return comps, nil
}

func (r *CompetitionRepository) Roles(ctx context.Context, competitionID, userID uint) ([]domain.CompetitionUserRole, error) {
	found, err := r.dao.Roles(ctx, competitionID, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Roles -> %w", err)
	}

	roles := make([]domain.CompetitionUserRole, len(found))
	for i, role := range found {
		roles[i] = domain.CompetitionUserRole(role)
	}

	return roles, nil
}

func (r *CompetitionRepository) FindSite(ctx context.Context, siteID uint) (domain.Site, error) {
	found, err := r.dao.FindSite(ctx, siteID)
	if err != nil {
		return domain.Site{}, fmt.Errorf("r.dao.FindSite -> %w", err)
	}

	return siteDaoToDomain(found), nil
}

func (r *CompetitionRepository) ListSites(ctx context.Context, competitionID uint) ([]domain.Site, error) {
	found, err := r.dao.ListSites(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSites -> %w", err)
	}

	return sitesDaoToDomain(found), nil
}

func (r *CompetitionRepository) UpdateSiteCapacity(ctx context.Context, siteID uint, capacity int) (domain.Site, error) {
	updated, err := r.dao.UpdateSiteCapacity(ctx, siteID, capacity)
	if err != nil {
		return domain.Site{}, fmt.Errorf("r.dao.UpdateSiteCapacity -> %w", err)
	}

	return siteDaoToDomain(updated), nil
}
