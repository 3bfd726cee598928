package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationerrors "github.com/zkkaa/sipetak-sub000/internal/notification/errors"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	GetMine(ctx context.Context, userID string, page, pageSize int) ([]NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetMine(ctx context.Context, userID string, page, pageSize int) ([]NotificationResponse, int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, 0, notificationerrors.ErrInvalidUserID
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	notifications, total, err := s.repo.FindAllByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(notifications), total, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, notificationerrors.ErrInvalidUserID
	}
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrNotificationNotFound
	}

	affected, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		s.logger.Error("mark read persist failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	// Scoped by user_id sehingga notifikasi orang lain terlihat tidak ada
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return notificationerrors.ErrInvalidUserID
	}
	return s.repo.MarkAllRead(ctx, userID)
}
