package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCompetitionNotFound   = errors.New("competition not found")
	ErrCompetitionCodeExists = errors.New("competition code already in use")
	ErrSiteNotFound          = errors.New("site not found")
)

type Competition struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	Code               string `gorm:"uniqueIndex;not null"`
	Region             string
	EarlyRegDeadline   *time.Time
	GeneralRegDeadline time.Time `gorm:"not null"`
	StartDate          time.Time `gorm:"not null"`
	Information        string
	Sites              []Site `gorm:"foreignKey:CompetitionID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Site struct {
	ID            uint   `gorm:"primaryKey"`
	CompetitionID uint   `gorm:"index;not null"`
	UniversityID  *uint  `gorm:"index"`
	Name          string `gorm:"not null"`
	Capacity      int    `gorm:"not null"`
}

type CompetitionDAO struct {
	db *gorm.DB
}

func NewCompetitionDAO(db *gorm.DB) *CompetitionDAO {
	return &CompetitionDAO{
		db: db,
	}
}

// Insert creates the competition, its sites and the creator's admin row in one transaction.
func (d *CompetitionDAO) Insert(ctx context.Context, comp Competition, admin Staff) (Competition, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comp).Error; err != nil {
			if isUniqueViolation(err, "idx_competitions_code") {
				return ErrCompetitionCodeExists
			}
			return err
		}

		admin.CompetitionID = comp.ID
		return tx.Create(&admin).Error
	})
	if err != nil {
		return Competition{}, err
	}

	return comp, nil
}

func (d *CompetitionDAO) Update(ctx context.Context, comp Competition) (Competition, error) {
	result := d.db.WithContext(ctx).Model(&Competition{ID: comp.ID}).Updates(map[string]interface{}{
		"name":                 comp.Name,
		"region":               comp.Region,
		"early_reg_deadline":   comp.EarlyRegDeadline,
		"general_reg_deadline": comp.GeneralRegDeadline,
		"start_date":           comp.StartDate,
		"information":          comp.Information,
	})
	if result.Error != nil {
		return Competition{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Competition{}, ErrCompetitionNotFound
	}

	return d.FindByID(ctx, comp.ID)
}

func (d *CompetitionDAO) FindByID(ctx context.Context, id uint) (Competition, error) {
	var comp Competition

	result := d.db.WithContext(ctx).Preload("Sites", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&comp, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Competition{}, ErrCompetitionNotFound
		}

		return Competition{}, result.Error
	}

	return comp, nil
}

func (d *CompetitionDAO) FindByCode(ctx context.Context, code string) (Competition, error) {
	var comp Competition

	result := d.db.WithContext(ctx).Preload("Sites", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&comp, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Competition{}, ErrCompetitionNotFound
		}

		return Competition{}, result.Error
	}

	return comp, nil
}

// FindByUserID returns every competition the user is a participant or staff member of.
func (d *CompetitionDAO) FindByUserID(ctx context.Context, userID uint) ([]Competition, error) {
	var comps []Competition

	result := d.db.WithContext(ctx).
		Where("id IN (?)", d.db.Model(&Participant{}).Select("competition_id").Where("user_id = ?", userID)).
		Or("id IN (?)", d.db.Model(&Staff{}).Select("competition_id").Where("user_id = ?", userID)).
		Order("start_date DESC").
		Find(&comps)
	if result.Error != nil {
		return nil, result.Error
	}

	return comps, nil
}

// Roles returns the role names the user holds in the competition.
// Only accepted staff rows count.
func (d *CompetitionDAO) Roles(ctx context.Context, competitionID, userID uint) ([]string, error) {
	var roles []string

	result := d.db.WithContext(ctx).Model(&Staff{}).
		Where("competition_id = ? AND user_id = ? AND access = ?", competitionID, userID, "Accepted").
		Order("role").
		Pluck("role", &roles)
	if result.Error != nil {
		return nil, result.Error
	}

	var participants int64
	result = d.db.WithContext(ctx).Model(&Participant{}).
		Where("competition_id = ? AND user_id = ?", competitionID, userID).
		Count(&participants)
	if result.Error != nil {
		return nil, result.Error
	}
	if participants > 0 {
		roles = append(roles, "Participant")
	}

	return roles, nil
}

func (d *CompetitionDAO) FindSite(ctx context.Context, siteID uint) (Site, error) {
	var site Site

	result := d.db.WithContext(ctx).First(&site, siteID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Site{}, ErrSiteNotFound
		}

		return Site{}, result.Error
	}

	return site, nil
}

func (d *CompetitionDAO) ListSites(ctx context.Context, competitionID uint) ([]Site, error) {
	var sites []Site

	result := d.db.WithContext(ctx).Where("competition_id = ?", competitionID).Order("id").Find(&sites)
	if result.Error != nil {
		return nil, result.Error
	}

	return sites, nil
}

func (d *CompetitionDAO) UpdateSiteCapacity(ctx context.Context, siteID uint, capacity int) (Site, error) {
	result := d.db.WithContext(ctx).Model(&Site{ID: siteID}).Update("capacity", capacity)
	if result.Error != nil {
		return Site{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Site{}, ErrSiteNotFound
	}

	return d.FindSite(ctx, siteID)
}
