package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrStaffNotFound       = errors.New("staff registration not found")
)

// Participant is a student's registration in a competition.
type Participant struct {
	ID              uint `gorm:"primaryKey"`
	CompetitionID   uint `gorm:"uniqueIndex:idx_participant;not null"`
	UserID          uint `gorm:"uniqueIndex:idx_participant;not null"`
	User            User `gorm:"foreignKey:UserID"`
	UniversityID    uint `gorm:"index;not null"`
	ICPCEligible    bool
	Level           string `gorm:"not null"`
	BoersenEligible bool
	DegreeYear      int
	DegreeField     string
	IsRemote        bool
	PreferredSiteID *uint
	TeamID          *uint `gorm:"index"`
	Bio             string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Staff is one role a staff member holds in a competition.
type Staff struct {
	ID            uint   `gorm:"primaryKey"`
	CompetitionID uint   `gorm:"uniqueIndex:idx_staff_role;not null"`
	UserID        uint   `gorm:"uniqueIndex:idx_staff_role;not null"`
	Role          string `gorm:"uniqueIndex:idx_staff_role;not null"` // "Admin", "Coach" or "Site-Coordinator"
	User          User   `gorm:"foreignKey:UserID"`
	UniversityID  uint   `gorm:"index;not null"`
	SiteID        *uint
	Access        string `gorm:"not null"`
	Bio           string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Staff) TableName() string {
	return "competition_staff"
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) InsertStudent(ctx context.Context, p Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Omit("User").Create(&p)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_participant") {
			return Participant{}, ErrDuplicateRegistration
		}

		return Participant{}, result.Error
	}

	return d.FindStudent(ctx, p.CompetitionID, p.UserID)
}

func (d *ParticipantDAO) FindStudent(ctx context.Context, competitionID, userID uint) (Participant, error) {
	var p Participant

	result := d.db.WithContext(ctx).Preload("User").
		First(&p, "competition_id = ? AND user_id = ?", competitionID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return p, nil
}

// studentColumns are the registration fields a student or their staff may edit.
// TeamID belongs to TeamDAO and is never written here.
var studentColumns = []string{
	"ICPCEligible", "Level", "BoersenEligible", "DegreeYear", "DegreeField",
	"IsRemote", "PreferredSiteID", "Bio", "UpdatedAt",
}

func (d *ParticipantDAO) UpdateStudent(ctx context.Context, p Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Model(&Participant{}).
		Where("competition_id = ? AND user_id = ?", p.CompetitionID, p.UserID).
		Select(studentColumns).
		Updates(&p)
	if result.Error != nil {
		return Participant{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Participant{}, ErrParticipantNotFound
	}

	return d.FindStudent(ctx, p.CompetitionID, p.UserID)
}

// WithdrawStudent deletes the registration in one transaction. A team left empty is
// deleted, otherwise it is set to reopenStatus and loses its seat.
func (d *ParticipantDAO) WithdrawStudent(ctx context.Context, competitionID, userID uint, reopenStatus string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Participant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "competition_id = ? AND user_id = ?", competitionID, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}

		if p.TeamID != nil {
			// Members withdrawing together queue on the team row, so exactly one sees it empty.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&Team{}, *p.TeamID).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&Participant{}, p.ID).Error; err != nil {
			return err
		}
		if p.TeamID == nil {
			return nil
		}

		var remaining int64
		if err := tx.Model(&Participant{}).Where("team_id = ?", *p.TeamID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Delete(&Team{}, *p.TeamID).Error
		}

		return tx.Model(&Team{}).Where("id = ?", *p.TeamID).
			Updates(map[string]interface{}{"status": reopenStatus, "seat": ""}).Error
	})
}

func (d *ParticipantDAO) ListStudents(ctx context.Context, f Filter) ([]Participant, error) {
	var students []Participant

	q := d.db.WithContext(ctx).Preload("User").Where("competition_id = ?", f.CompetitionID)
	if f.UniversityID != nil {
		q = q.Where("university_id = ?", *f.UniversityID)
	}
	if f.SiteID != nil {
		q = q.Where("preferred_site_id = ? OR team_id IN (?)", *f.SiteID,
			d.db.Model(&Team{}).Select("id").Where("site_id = ?", *f.SiteID))
	}

	if err := q.Order("id").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (d *ParticipantDAO) InsertStaff(ctx context.Context, s Staff) (Staff, error) {
	result := d.db.WithContext(ctx).Omit("User").Create(&s)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_staff_role") {
			return Staff{}, ErrDuplicateRegistration
		}

		return Staff{}, result.Error
	}

	return d.findStaffByID(ctx, s.ID)
}

func (d *ParticipantDAO) FindStaff(ctx context.Context, competitionID, userID uint) ([]Staff, error) {
	var staff []Staff

	result := d.db.WithContext(ctx).Preload("User").
		Where("competition_id = ? AND user_id = ?", competitionID, userID).
		Order("id").
		Find(&staff)
	if result.Error != nil {
		return nil, result.Error
	}

	return staff, nil
}

func (d *ParticipantDAO) UpdateStaff(ctx context.Context, s Staff) (Staff, error) {
	result := d.db.WithContext(ctx).Omit("User", "CreatedAt").Save(&s)
	if result.Error != nil {
		return Staff{}, result.Error
	}

	return d.findStaffByID(ctx, s.ID)
}

func (d *ParticipantDAO) ListStaff(ctx context.Context, f Filter) ([]Staff, error) {
	var staff []Staff

	q := d.db.WithContext(ctx).Preload("User").Where("competition_id = ?", f.CompetitionID)
	if f.UniversityID != nil {
		q = q.Where("university_id = ?", *f.UniversityID)
	}
	if f.SiteID != nil {
		q = q.Where("site_id = ?", *f.SiteID)
	}

	if err := q.Order("id").Find(&staff).Error; err != nil {
		return nil, err
	}

	return staff, nil
}

func (d *ParticipantDAO) findStaffByID(ctx context.Context, id uint) (Staff, error) {
	var s Staff

	result := d.db.WithContext(ctx).Preload("User").First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Staff{}, ErrStaffNotFound
		}

		return Staff{}, result.Error
	}

	return s, nil
}

// Filter narrows listings; nil fields are ignored.
type Filter struct {
	CompetitionID uint
	UniversityID  *uint
	SiteID        *uint
}
