package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindUniversityByID(ctx context.Context, id uint) (domain.University, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup dispatches on the user type. System admins are only created through compctl.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	switch user.Type {
	case domain.UserTypeStudent:
		return s.SignupStudent(ctx, user)
	case domain.UserTypeStaff:
		return s.SignupStaff(ctx, user)
	default:
		return domain.User{}, badRequestError("cannot sign up as %q", user.Type)
	}
}

func (s *AuthService) SignupStudent(ctx context.Context, user domain.User) (domain.User, error) {
	if user.UniversityID == nil {
		return domain.User{}, badRequestError("students must belong to a university")
	}
	user.Type = domain.UserTypeStudent

	return s.signup(ctx, user)
}

func (s *AuthService) SignupStaff(ctx context.Context, user domain.User) (domain.User, error) {
	user.Type = domain.UserTypeStaff
	user.StudentID = ""

	return s.signup(ctx, user)
}

// CreateSystemAdmin bypasses the signup rules and is used by the admin CLI.
func (s *AuthService) CreateSystemAdmin(ctx context.Context, user domain.User) (domain.User, error) {
	user.Type = domain.UserTypeSystemAdmin
	user.UniversityID = nil

	return s.signup(ctx, user)
}

func (s *AuthService) signup(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkEmailExists(ctx, user.Email); err != nil {
		return domain.User{}, err
	}

	if user.UniversityID != nil {
		if _, err := s.repo.FindUniversityByID(ctx, *user.UniversityID); err != nil {
			if errors.Is(err, repository.ErrUniversityNotFound) {
				return domain.User{}, notFoundError(err, "university %d not found", *user.UniversityID)
			}
			return domain.User{}, fmt.Errorf("s.repo.FindUniversityByID -> %w", err)
		}
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashedPassword

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, conflictError(err, "email %s is already registered", user.Email)
		}
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// Helper function for password hashing
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Helper function to check if email exists
func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return conflictError(ErrUserEmailExists, "email %s is already registered", email)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}
	return nil
}
