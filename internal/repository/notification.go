package repository

import (
	"context"
	"fmt"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

const notificationPageSize = 100

type NotificationDAO interface {
	Insert(ctx context.Context, n dao.Notification) (dao.Notification, error)
	FindByUserID(ctx context.Context, userID uint, limit int) ([]dao.Notification, error)
	MarkRead(ctx context.Context, userID uint, ids []uint) error
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Insert(ctx, dao.Notification{
		UserID:        n.UserID,
		CompetitionID: n.CompetitionID,
		TeamID:        n.TeamID,
		Type:          string(n.Type),
		Message:       n.Message,
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return notificationDaoToDomain(created), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	found, err := r.dao.FindByUserID(ctx, userID, notificationPageSize)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	ns := make([]domain.Notification, len(found))
	for i, n := range found {
		ns[i] = notificationDaoToDomain(n)
	}

	return ns, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID uint, ids []uint) error {
	if err := r.dao.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return nil
}

func notificationDaoToDomain(n dao.Notification) domain.Notification {
	return domain.Notification{
		ID:            n.ID,
		UserID:        n.UserID,
		CompetitionID: n.CompetitionID,
		TeamID:        n.TeamID,
		Type:          domain.NotificationType(n.Type),
		Message:       n.Message,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}
