package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTeamNotFound = errors.New("team not found")

type Team struct {
	ID            uint   `gorm:"primaryKey"`
	CompetitionID uint   `gorm:"index;not null"`
	UniversityID  uint   `gorm:"index;not null"`
	Name          string `gorm:"not null"`
	Level         string `gorm:"not null"`
	Status        string `gorm:"not null"`
	SiteID        *uint  `gorm:"index"`
	Site          *Site  `gorm:"foreignKey:SiteID"`
	PendingName   string
	PendingSiteID *uint
	Seat          string
	Members       []Participant `gorm:"foreignKey:TeamID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

// Insert creates the team and attaches the given participants to it.
func (d *TeamDAO) Insert(ctx context.Context, team Team, memberIDs []uint) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&team).Error; err != nil {
			return err
		}

		result := tx.Model(&Participant{}).
			Where("competition_id = ? AND user_id IN ? AND team_id IS NULL", team.CompetitionID, memberIDs).
			Update("team_id", team.ID)
		if result.Error != nil {
			return result.Error
		}
		if int(result.RowsAffected) != len(memberIDs) {
			return ErrParticipantNotFound
		}

		return nil
	})
	if err != nil {
		return Team{}, err
	}

	return d.FindByID(ctx, team.ID)
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).Preload("Site").Preload("Members.User").First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

// Update writes only the given fields of team, leaving seats and members written
// by other operations untouched.
func (d *TeamDAO) Update(ctx context.Context, team Team, columns []string) (Team, error) {
	if len(columns) == 0 {
		return d.FindByID(ctx, team.ID)
	}

	selected := append(append([]string{}, columns...), "UpdatedAt")
	result := d.db.WithContext(ctx).Model(&Team{ID: team.ID}).
		Select(selected).
		Updates(&team)
	if result.Error != nil {
		return Team{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Team{}, ErrTeamNotFound
	}

	return d.FindByID(ctx, team.ID)
}

func (d *TeamDAO) List(ctx context.Context, f Filter) ([]Team, error) {
	var teams []Team

	q := d.db.WithContext(ctx).Preload("Site").Preload("Members.User").Where("competition_id = ?", f.CompetitionID)
	if f.UniversityID != nil {
		q = q.Where("university_id = ?", *f.UniversityID)
	}
	if f.SiteID != nil {
		q = q.Where("site_id = ?", *f.SiteID)
	}

	if err := q.Order("id").Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

// SeatAssignment is one placed team.
type SeatAssignment struct {
	TeamID uint
	SiteID uint
	Seat   string
}

// SaveSeats clears every seat in the competition and writes the new assignments.
func (d *TeamDAO) SaveSeats(ctx context.Context, competitionID uint, seats []SeatAssignment) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Team{}).Where("competition_id = ?", competitionID).Update("seat", "").Error; err != nil {
			return err
		}

		for _, s := range seats {
			result := tx.Model(&Team{}).
				Where("id = ? AND competition_id = ?", s.TeamID, competitionID).
				Updates(map[string]interface{}{"site_id": s.SiteID, "seat": s.Seat})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTeamNotFound
			}
		}

		return nil
	})
}
