package repository

import (
	"context"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

var (
	ErrParticipantNotFound   = dao.ErrParticipantNotFound
	ErrStaffNotFound         = dao.ErrStaffNotFound
	ErrDuplicateRegistration = dao.ErrDuplicateRegistration
)

type ParticipantDAO interface {
	InsertStudent(ctx context.Context, p dao.Participant) (dao.Participant, error)
	FindStudent(ctx context.Context, competitionID, userID uint) (dao.Participant, error)
	UpdateStudent(ctx context.Context, p dao.Participant) (dao.Participant, error)
	WithdrawStudent(ctx context.Context, competitionID, userID uint, reopenStatus string) error
	ListStudents(ctx context.Context, f dao.Filter) ([]dao.Participant, error)
	InsertStaff(ctx context.Context, s dao.Staff) (dao.Staff, error)
	FindStaff(ctx context.Context, competitionID, userID uint) ([]dao.Staff, error)
	UpdateStaff(ctx context.Context, s dao.Staff) (dao.Staff, error)
	ListStaff(ctx context.Context, f dao.Filter) ([]dao.Staff, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) CreateStudent(ctx context.Context, info domain.StudentInfo) (domain.StudentInfo, error) {
	created, err := r.dao.InsertStudent(ctx, studentDomainToDao(info))
	if err != nil {
		return domain.StudentInfo{}, fmt.Errorf("r.dao.InsertStudent -> %w", err)
	}

	return studentDaoToDomain(created), nil
}

func (r *ParticipantRepository) FindStudent(ctx context.Context, competitionID, userID uint) (domain.StudentInfo, error) {
	found, err := r.dao.FindStudent(ctx, competitionID, userID)
	if err != nil {
		return domain.StudentInfo{}, fmt.Errorf("r.dao.FindStudent -> %w", err)
	}

	return studentDaoToDomain(found), nil
}

func (r *ParticipantRepository) UpdateStudent(ctx context.Context, info domain.StudentInfo) (domain.StudentInfo, error) {
	updated, err := r.dao.UpdateStudent(ctx, studentDomainToDao(info))
	if err != nil {
		return domain.StudentInfo{}, fmt.Errorf("r.dao.UpdateStudent -> %w", err)
	}

	return studentDaoToDomain(updated), nil
}

// WithdrawStudent removes the registration. The student's team is deleted when it
// empties and otherwise goes back to Pending without a seat.
func (r *ParticipantRepository) WithdrawStudent(ctx context.Context, competitionID, userID uint) error {
	if err := r.dao.WithdrawStudent(ctx, competitionID, userID, string(domain.TeamPending)); err != nil {
		return fmt.Errorf("r.dao.WithdrawStudent -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) ListStudents(ctx context.Context, f domain.ListFilter) ([]domain.StudentInfo, error) {
	found, err := r.dao.ListStudents(ctx, filterToDao(f))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListStudents -> %w", err)
	}

	return studentsDaoToDomain(found), nil
}

func (r *ParticipantRepository) CreateStaff(ctx context.Context, info domain.StaffInfo) (domain.StaffInfo, error) {
	created, err := r.dao.InsertStaff(ctx, staffDomainToDao(info))
	if err != nil {
		return domain.StaffInfo{}, fmt.Errorf("r.dao.InsertStaff -> %w", err)
	}

	return staffDaoToDomain(created), nil
}

func (r *ParticipantRepository) FindStaff(ctx context.Context, competitionID, userID uint) ([]domain.StaffInfo, error) {
	found, err := r.dao.FindStaff(ctx, competitionID, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindStaff -> %w", err)
	}

	return staffListDaoToDomain(found), nil
}

func (r *ParticipantRepository) UpdateStaff(ctx context.Context, info domain.StaffInfo) (domain.StaffInfo, error) {
	updated, err := r.dao.UpdateStaff(ctx, staffDomainToDao(info))
	if err != nil {
		return domain.StaffInfo{}, fmt.Errorf("r.dao.UpdateStaff -> %w", err)
	}

	return staffDaoToDomain(updated), nil
}

func (r *ParticipantRepository) ListStaff(ctx context.Context, f domain.ListFilter) ([]domain.StaffInfo, error) {
	found, err := r.dao.ListStaff(ctx, filterToDao(f))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListStaff -> %w", err)
	}

	return staffListDaoToDomain(found), nil
}
