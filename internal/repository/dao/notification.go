package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID            uint  `gorm:"primaryKey"`
	UserID        uint  `gorm:"index;not null"`
	CompetitionID *uint `gorm:"index"`
	TeamID        *uint
	Type          string `gorm:"not null"`
	Message       string `gorm:"not null"`
	Read          bool   `gorm:"not null"`
	CreatedAt     time.Time
}

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{
		db: db,
	}
}

func (d *NotificationDAO) Insert(ctx context.Context, n Notification) (Notification, error) {
	if err := d.db.WithContext(ctx).Create(&n).Error; err != nil {
		return Notification{}, err
	}

	return n, nil
}

func (d *NotificationDAO) FindByUserID(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	var ns []Notification

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ns)
	if result.Error != nil {
		return nil, result.Error
	}

	return ns, nil
}

func (d *NotificationDAO) MarkRead(ctx context.Context, userID uint, ids []uint) error {
	q := d.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}

	return q.Update("read", true).Error
}
