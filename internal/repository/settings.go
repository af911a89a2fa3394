package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

type SettingsDAO interface {
	ListCourses(ctx context.Context, competitionID, universityID uint) ([]dao.Course, error)
	UpsertCourses(ctx context.Context, courses []dao.Course) error
	FindRegoToggles(ctx context.Context, competitionID, universityID uint) (dao.RegoToggles, error)
	UpsertRegoToggles(ctx context.Context, t dao.RegoToggles) error
	FindAnnouncement(ctx context.Context, competitionID, universityID uint) (dao.Announcement, error)
	UpsertAnnouncement(ctx context.Context, a dao.Announcement) (dao.Announcement, error)
}

type SettingsRepository struct {
	dao SettingsDAO
}

func NewSettingsRepository(dao SettingsDAO) *SettingsRepository {
	return &SettingsRepository{
		dao: dao,
	}
}

func (r *SettingsRepository) ListCourses(ctx context.Context, competitionID, universityID uint) ([]domain.Course, error) {
	found, err := r.dao.ListCourses(ctx, competitionID, universityID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListCourses -> %w", err)
	}

	courses := make([]domain.Course, len(found))
	for i, c := range found {
		courses[i] = domain.Course{
			CompetitionID: c.CompetitionID,
			UniversityID:  c.UniversityID,
			Category:      domain.CourseCategory(c.Category),
			Name:          c.Name,
		}
	}

	return courses, nil
}

func (r *SettingsRepository) SaveCourses(ctx context.Context, competitionID, universityID uint, courses []domain.Course) ([]domain.Course, error) {
	daoCourses := make([]dao.Course, len(courses))
	for i, c := range courses {
		daoCourses[i] = dao.Course{
			CompetitionID: competitionID,
			UniversityID:  universityID,
			Category:      string(c.Category),
			Name:          c.Name,
		}
	}

	if err := r.dao.UpsertCourses(ctx, daoCourses); err != nil {
		return nil, fmt.Errorf("r.dao.UpsertCourses -> %w", err)
	}

	return r.ListCourses(ctx, competitionID, universityID)
}

// FindRegoToggles falls back to domain.DefaultRegoToggles when nothing was saved.
func (r *SettingsRepository) FindRegoToggles(ctx context.Context, competitionID, universityID uint) (domain.RegoToggles, error) {
	found, err := r.dao.FindRegoToggles(ctx, competitionID, universityID)
	if err != nil {
		if errors.Is(err, dao.ErrRegoTogglesNotFound) {
			return domain.DefaultRegoToggles(competitionID, universityID), nil
		}

		return domain.RegoToggles{}, fmt.Errorf("r.dao.FindRegoToggles -> %w", err)
	}

	return domain.RegoToggles{
		CompetitionID:   found.CompetitionID,
		UniversityID:    found.UniversityID,
		StudentRegoOpen: found.StudentRegoOpen,
		SiteSelection:   found.SiteSelection,
		TeamNameChanges: found.TeamNameChanges,
		SiteChanges:     found.SiteChanges,
	}, nil
}

func (r *SettingsRepository) SaveRegoToggles(ctx context.Context, t domain.RegoToggles) (domain.RegoToggles, error) {
	err := r.dao.UpsertRegoToggles(ctx, dao.RegoToggles{
		CompetitionID:   t.CompetitionID,
		UniversityID:    t.UniversityID,
		StudentRegoOpen: t.StudentRegoOpen,
		SiteSelection:   t.SiteSelection,
		TeamNameChanges: t.TeamNameChanges,
		SiteChanges:     t.SiteChanges,
	})
	if err != nil {
		return domain.RegoToggles{}, fmt.Errorf("r.dao.UpsertRegoToggles -> %w", err)
	}

	return t, nil
}

// FindAnnouncement returns an empty announcement when none was posted.
func (r *SettingsRepository) FindAnnouncement(ctx context.Context, competitionID, universityID uint) (domain.Announcement, error) {
	found, err := r.dao.FindAnnouncement(ctx, competitionID, universityID)
	if err != nil {
		if errors.Is(err, dao.ErrAnnouncementNotFound) {
			return domain.Announcement{CompetitionID: competitionID, UniversityID: universityID}, nil
		}

		return domain.Announcement{}, fmt.Errorf("r.dao.FindAnnouncement -> %w", err)
	}

	return domain.Announcement{
		CompetitionID: found.CompetitionID,
		UniversityID:  found.UniversityID,
		Message:       found.Message,
		UpdatedAt:     found.UpdatedAt,
	}, nil
}

func (r *SettingsRepository) SaveAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error) {
	saved, err := r.dao.UpsertAnnouncement(ctx, dao.Announcement{
		CompetitionID: a.CompetitionID,
		UniversityID:  a.UniversityID,
		Message:       a.Message,
	})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("r.dao.UpsertAnnouncement -> %w", err)
	}

	return domain.Announcement{
		CompetitionID: saved.CompetitionID,
		UniversityID:  saved.UniversityID,
		Message:       saved.Message,
		UpdatedAt:     saved.UpdatedAt,
	}, nil
}
