package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icpcsp/compreg/internal/domain"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, userID uint, ids []uint) error {
	args := m.Called(ctx, userID, ids)
	return args.Error(0)
}

type recordingPublisher struct {
	published map[uint][]domain.Notification
}

func (p *recordingPublisher) Publish(userID uint, n domain.Notification) {
	if p.published == nil {
		p.published = map[uint][]domain.Notification{}
	}
	p.published[userID] = append(p.published[userID], n)
}

func TestNotificationService_Notify(t *testing.T) {
	repo := new(MockNotificationRepo)
	pub := &recordingPublisher{}
	svc := NewNotificationService(repo, pub)

	ok := domain.Notification{UserID: 1, Type: domain.NotificationWelcome, Message: "hi"}
	broken := domain.Notification{UserID: 2, Type: domain.NotificationWelcome, Message: "hi"}
	repo.On("Create", mock.Anything, ok).Return(domain.Notification{ID: 10, UserID: 1, Message: "hi"}, nil).Once()
	repo.On("Create", mock.Anything, broken).Return(domain.Notification{}, errors.New("db down")).Once()

	err := svc.Notify(context.Background(), ok, broken)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	require.Len(t, pub.published[1], 1)
	assert.Equal(t, uint(10), pub.published[1][0].ID)
	assert.Empty(t, pub.published[2])
}

func TestNotify_FailureIsSwallowed(t *testing.T) {
	n := &RecordingNotifier{Err: errors.New("boom")}

	assert.NotPanics(t, func() {
		notify(context.Background(), n, domain.Notification{UserID: 4})
	})
	assert.Equal(t, []uint{4}, n.Recipients())
}
