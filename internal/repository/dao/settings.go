package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegoTogglesNotFound  = errors.New("rego toggles not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

type Course struct {
	ID            uint   `gorm:"primaryKey"`
	CompetitionID uint   `gorm:"uniqueIndex:idx_course;not null"`
	UniversityID  uint   `gorm:"uniqueIndex:idx_course;not null"`
	Category      string `gorm:"uniqueIndex:idx_course;not null"`
	Name          string `gorm:"not null"`
}

type RegoToggles struct {
	CompetitionID   uint `gorm:"primaryKey;autoIncrement:false"`
	UniversityID    uint `gorm:"primaryKey;autoIncrement:false"`
	StudentRegoOpen bool `gorm:"not null"`
	SiteSelection   bool `gorm:"not null"`
	TeamNameChanges bool `gorm:"not null"`
	SiteChanges     bool `gorm:"not null"`
}

type Announcement struct {
	CompetitionID uint `gorm:"primaryKey;autoIncrement:false"`
	UniversityID  uint `gorm:"primaryKey;autoIncrement:false"`
	Message       string
	UpdatedAt     time.Time
}

type SettingsDAO struct {
	db *gorm.DB
}

func NewSettingsDAO(db *gorm.DB) *SettingsDAO {
	return &SettingsDAO{
		db: db,
	}
}

func (d *SettingsDAO) ListCourses(ctx context.Context, competitionID, universityID uint) ([]Course, error) {
	var courses []Course

	result := d.db.WithContext(ctx).
		Where("competition_id = ? AND university_id = ?", competitionID, universityID).
		Order("category").
		Find(&courses)
	if result.Error != nil {
		return nil, result.Error
	}

	return courses, nil
}

func (d *SettingsDAO) UpsertCourses(ctx context.Context, courses []Course) error {
	if len(courses) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "university_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&courses).Error
}

func (d *SettingsDAO) FindRegoToggles(ctx context.Context, competitionID, universityID uint) (RegoToggles, error) {
	var t RegoToggles

	result := d.db.WithContext(ctx).
		First(&t, "competition_id = ? AND university_id = ?", competitionID, universityID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RegoToggles{}, ErrRegoTogglesNotFound
		}

		return RegoToggles{}, result.Error
	}

	return t, nil
}

func (d *SettingsDAO) UpsertRegoToggles(ctx context.Context, t RegoToggles) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&t).Error
}

func (d *SettingsDAO) FindAnnouncement(ctx context.Context, competitionID, universityID uint) (Announcement, error) {
	var a Announcement

	result := d.db.WithContext(ctx).
		First(&a, "competition_id = ? AND university_id = ?", competitionID, universityID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Announcement{}, ErrAnnouncementNotFound
		}

		return Announcement{}, result.Error
	}

	return a, nil
}

func (d *SettingsDAO) UpsertAnnouncement(ctx context.Context, a Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&a)
	if result.Error != nil {
		return Announcement{}, result.Error
	}

	return a, nil
}
