package notification_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/zkkaa/sipetak-sub000/internal/notification"
	notificationerrors "github.com/zkkaa/sipetak-sub000/internal/notification/errors"
)

type fakeNotificationRepository struct {
	findAllByUserFn func(ctx context.Context, userID string, limit, offset int) ([]notification.Notification, int64, error)
	countUnreadFn   func(ctx context.Context, userID string) (int64, error)
	markReadFn      func(ctx context.Context, userID, id string) (int64, error)
	markAllReadFn   func(ctx context.Context, userID string) error
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return nil
}

func (f *fakeNotificationRepository) CreateForAdmins(ctx context.Context, template notification.Notification) error {
	return nil
}

func (f *fakeNotificationRepository) FindAllByUser(ctx context.Context, userID string, limit, offset int) ([]notification.Notification, int64, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, userID, id)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, userID)
	}
	return nil
}

func TestNotificationService_GetMine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("pagination defaults", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			findAllByUserFn: func(ctx context.Context, uid string, limit, offset int) ([]notification.Notification, int64, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, 10, limit)
				assert.Equal(t, 0, offset)
				return []notification.Notification{{ID: uuid.New(), UserID: uuid.MustParse(userID), Type: notification.TypeSubmissionApproved}}, 1, nil
			},
		}
		svc := notification.NewService(repo)

		resp, total, err := svc.GetMine(ctx, userID, 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
	})

	t.Run("negative invalid user id", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepository{})

		_, _, err := svc.GetMine(ctx, "bukan-uuid", 1, 10)

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidUserID)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	notifID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			markReadFn: func(ctx context.Context, uid, id string) (int64, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, notifID, id)
				return 1, nil
			},
		}
		svc := notification.NewService(repo)

		assert.NoError(t, svc.MarkRead(ctx, userID, notifID))
	})

	t.Run("negative foreign notification looks missing", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			markReadFn: func(ctx context.Context, uid, id string) (int64, error) {
				return 0, nil
			},
		}
		svc := notification.NewService(repo)

		err := svc.MarkRead(ctx, userID, notifID)

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}
