package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, notFoundError(err, "user %d not found", id)
		}
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// UpdateProfile changes the editable profile fields. Email and user type never change here.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, profile domain.UserProfile) (domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.ApplyProfile(profile)

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
