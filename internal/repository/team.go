package repository

import (
	"context"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

var ErrTeamNotFound = dao.ErrTeamNotFound

// Team fields accepted by UpdateTeam.
const (
	TeamName        = "Name"
	TeamLevel       = "Level"
	TeamStatus      = "Status"
	TeamSite        = "SiteID"
	TeamPendingName = "PendingName"
	TeamPendingSite = "PendingSiteID"
	TeamSeat        = "Seat"
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team, memberIDs []uint) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	Update(ctx context.Context, team dao.Team, columns []string) (dao.Team, error)
	List(ctx context.Context, f dao.Filter) ([]dao.Team, error)
	SaveSeats(ctx context.Context, competitionID uint, seats []dao.SeatAssignment) error
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team domain.Team, memberIDs []uint) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, teamDomainToDao(team), memberIDs)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return teamDaoToDomain(created), nil
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return teamDaoToDomain(found), nil
}

// UpdateTeam writes the named fields of team. Other fields keep their stored values.
func (r *TeamRepository) UpdateTeam(ctx context.Context, team domain.Team, fields ...string) (domain.Team, error) {
	updated, err := r.dao.Update(ctx, teamDomainToDao(team), fields)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return teamDaoToDomain(updated), nil
}

func (r *TeamRepository) ListTeams(ctx context.Context, f domain.ListFilter) ([]domain.Team, error) {
	found, err := r.dao.List(ctx, filterToDao(f))
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	teams := make([]domain.Team, len(found))
	for i, t := range found {
		teams[i] = teamDaoToDomain(t)
	}

	return teams, nil
}

func (r *TeamRepository) SaveSeatAssignments(ctx context.Context, competitionID uint, seats []domain.SeatAssignment) error {
	daoSeats := make([]dao.SeatAssignment, len(seats))
	for i, s := range seats {
		daoSeats[i] = dao.SeatAssignment{TeamID: s.TeamID, SiteID: s.SiteID, Seat: s.Seat}
	}

	if err := r.dao.SaveSeats(ctx, competitionID, daoSeats); err != nil {
		return fmt.Errorf("r.dao.SaveSeats -> %w", err)
	}

	return nil
}

// ListSeatAssignments returns the seated teams matching f.
func (r *TeamRepository) ListSeatAssignments(ctx context.Context, f domain.ListFilter) ([]domain.SeatAssignment, error) {
	found, err := r.dao.List(ctx, filterToDao(f))
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	var seats []domain.SeatAssignment
	for _, t := range found {
		if t.Seat == "" || t.SiteID == nil {
			continue
		}

		seat := domain.SeatAssignment{
			TeamID:   t.ID,
			TeamName: t.Name,
			SiteID:   *t.SiteID,
			Seat:     t.Seat,
		}
		if t.Site != nil {
			seat.SiteName = t.Site.Name
		}
		seats = append(seats, seat)
	}

	return seats, nil
}
