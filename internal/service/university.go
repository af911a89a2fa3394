package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
)

const universitiesCacheKey = "universities:list"

type UniversityRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	ListUniversities(ctx context.Context) ([]domain.University, error)
	CreateUniversity(ctx context.Context, uni domain.University) (domain.University, error)
}

// Cache is a JSON value cache. A miss is reported as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

type UniversityService struct {
	repo  UniversityRepository
	cache Cache
}

// NewUniversityService accepts a nil cache, in which case every read goes to the database.
func NewUniversityService(repo UniversityRepository, cache Cache) *UniversityService {
	return &UniversityService{
		repo:  repo,
		cache: cache,
	}
}

func (s *UniversityService) ListUniversities(ctx context.Context) ([]domain.University, error) {
	if s.cache != nil {
		var cached []domain.University
		hit, err := s.cache.Get(ctx, universitiesCacheKey, &cached)
		if err != nil {
			zap.L().Warn("university cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	unis, err := s.repo.ListUniversities(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListUniversities -> %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, universitiesCacheKey, unis); err != nil {
			zap.L().Warn("university cache write failed", zap.Error(err))
		}
	}

	return unis, nil
}

func (s *UniversityService) CreateUniversity(ctx context.Context, callerID uint, name string) (domain.University, error) {
	caller, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		return domain.University{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if caller.Type != domain.UserTypeSystemAdmin {
		return domain.University{}, authError("only system admins can add universities")
	}

	created, err := s.repo.CreateUniversity(ctx, domain.University{Name: name})
	if err != nil {
		if errors.Is(err, repository.ErrUniversityNameExists) {
			return domain.University{}, conflictError(err, "university %q already exists", name)
		}
		return domain.University{}, fmt.Errorf("s.repo.CreateUniversity -> %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, universitiesCacheKey); err != nil {
			zap.L().Warn("university cache invalidation failed", zap.Error(err))
		}
	}

	return created, nil
}
