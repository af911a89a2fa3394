package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/metrics"
)

// Notifier delivers notifications to users. Business operations never fail because of it.
type Notifier interface {
	Notify(ctx context.Context, notifications ...domain.Notification) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID uint, ids []uint) error
}

// Publisher pushes a stored notification to the user's live connections.
type Publisher interface {
	Publish(userID uint, n domain.Notification)
}

type NotificationService struct {
	repo NotificationRepository
	pub  Publisher
}

func NewNotificationService(repo NotificationRepository, pub Publisher) *NotificationService {
	return &NotificationService{
		repo: repo,
		pub:  pub,
	}
}

func (s *NotificationService) Notify(ctx context.Context, notifications ...domain.Notification) error {
	var errs []error
	for _, n := range notifications {
		created, err := s.repo.Create(ctx, n)
		if err != nil {
			metrics.NotificationsTotal.WithLabelValues("failed").Inc()
			errs = append(errs, fmt.Errorf("s.repo.Create(user %d) -> %w", n.UserID, err))
			continue
		}
		metrics.NotificationsTotal.WithLabelValues("stored").Inc()
		if s.pub != nil {
			s.pub.Publish(created.UserID, created)
		}
	}

	return errors.Join(errs...)
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uint) ([]domain.Notification, error) {
	ns, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return ns, nil
}

// MarkRead marks the given notifications as read, or all of them when ids is empty.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, ids []uint) error {
	if err := s.repo.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return nil
}

func notify(ctx context.Context, n Notifier, notifications ...domain.Notification) {
	if n == nil || len(notifications) == 0 {
		return
	}
	if err := n.Notify(ctx, notifications...); err != nil {
		zap.L().Warn("failed to deliver notifications",
			zap.Int("count", len(notifications)),
			zap.Error(err),
		)
	}
}

func notificationsFor(userIDs []uint, competitionID uint, teamID *uint, typ domain.NotificationType, message string) []domain.Notification {
	ns := make([]domain.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		ns = append(ns, domain.Notification{
			UserID:        id,
			CompetitionID: competitionIDPtr(competitionID),
			TeamID:        teamID,
			Type:          typ,
			Message:       message,
		})
	}
	return ns
}
