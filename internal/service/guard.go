package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

type roleSource interface {
	FindByID(ctx context.Context, id uint) (domain.Competition, error)
	Roles(ctx context.Context, competitionID, userID uint) ([]domain.CompetitionUserRole, error)
}

// requireRole loads the competition and the caller's roles in it. It fails with
// an Auth error unless the caller holds one of want, or any role when want is empty.
func requireRole(ctx context.Context, src roleSource, competitionID, userID uint, want ...domain.CompetitionUserRole) (domain.Competition, []domain.CompetitionUserRole, error) {
	comp, err := src.FindByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repository.ErrCompetitionNotFound) {
			return domain.Competition{}, nil, notFoundError(err, "competition %d not found", competitionID)
		}
		return domain.Competition{}, nil, fmt.Errorf("src.FindByID -> %w", err)
	}

	roles, err := src.Roles(ctx, competitionID, userID)
	if err != nil {
		return domain.Competition{}, nil, fmt.Errorf("src.Roles -> %w", err)
	}

	if len(want) == 0 {
		if len(roles) == 0 {
			return domain.Competition{}, nil, authError("user %d has no role in competition %d", userID, competitionID)
		}
		return comp, roles, nil
	}
	if !domain.HasRole(roles, want...) {
		return domain.Competition{}, nil, authError("user %d does not hold any of %v in competition %d", userID, want, competitionID)
	}

	return comp, roles, nil
}

// acceptedStaff returns the caller's accepted staff row for role.
func acceptedStaff(rows []domain.StaffInfo, role domain.CompetitionUserRole) (domain.StaffInfo, bool) {
	for _, row := range rows {
		if row.Role == role && row.Access == domain.AccessAccepted {
			return row, true
		}
	}
	return domain.StaffInfo{}, false
}

func competitionIDPtr(id uint) *uint {
	return &id
}
