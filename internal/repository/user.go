package repository

import (
	"context"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

var (
	ErrUserEmailExists      = dao.ErrUserEmailExists
	ErrUserNotFound         = dao.ErrUserNotFound
	ErrUniversityNotFound   = dao.ErrUniversityNotFound
	ErrUniversityNameExists = dao.ErrUniversityNameExists
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindUniversityByID(ctx context.Context, id uint) (dao.University, error)
	ListUniversities(ctx context.Context) ([]dao.University, error)
	InsertUniversity(ctx context.Context, uni dao.University) (dao.University, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindUniversityByID(ctx context.Context, id uint) (domain.University, error) {
	found, err := r.dao.FindUniversityByID(ctx, id)
	if err != nil {
		return domain.University{}, fmt.Errorf("r.dao.FindUniversityByID -> %w", err)
	}

	return domain.University{ID: found.ID, Name: found.Name}, nil
}

func (r *UserRepository) ListUniversities(ctx context.Context) ([]domain.University, error) {
	found, err := r.dao.ListUniversities(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListUniversities -> %w", err)
	}

	unis := make([]domain.University, len(found))
	for i, u := range found {
		unis[i] = domain.University{ID: u.ID, Name: u.Name}
	}

	return unis, nil
}

func (r *UserRepository) CreateUniversity(ctx context.Context, uni domain.University) (domain.University, error) {
	created, err := r.dao.InsertUniversity(ctx, dao.University{Name: uni.Name})
	if err != nil {
		return domain.University{}, fmt.Errorf("r.dao.InsertUniversity -> %w", err)
	}

	return domain.University{ID: created.ID, Name: created.Name}, nil
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:                u.ID,
		Email:             u.Email,
		Password:          u.Password,
		Name:              u.Name,
		PreferredName:     u.PreferredName,
		Pronouns:          u.Pronouns,
		Gender:            u.Gender,
		TShirtSize:        u.TShirtSize,
		DietaryReqs:       u.DietaryReqs,
		AllergyInfo:       u.AllergyInfo,
		AccessibilityReqs: u.AccessibilityReqs,
		UserType:          string(u.Type),
		UniversityID:      u.UniversityID,
		StudentID:         u.StudentID,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:                u.ID,
		Email:             u.Email,
		Password:          u.Password,
		Name:              u.Name,
		PreferredName:     u.PreferredName,
		Pronouns:          u.Pronouns,
		Gender:            u.Gender,
		TShirtSize:        u.TShirtSize,
		DietaryReqs:       u.DietaryReqs,
		AllergyInfo:       u.AllergyInfo,
		AccessibilityReqs: u.AccessibilityReqs,
		Type:              domain.UserType(u.UserType),
		UniversityID:      u.UniversityID,
		StudentID:         u.StudentID,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
