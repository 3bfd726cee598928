package notification

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	CreateForAdmins(ctx context.Context, template Notification) error
	FindAllByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO notifications (id, user_id, type, title, message, link, is_read, related_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, false, $7, NOW())
		`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.RelatedID)
		return err
	}
	return r.db.WithContext(ctx).Create(n).Error
}

// CreateForAdmins menulis satu baris notifikasi untuk setiap akun Admin aktif.
// Template diisi dengan UserID masing-masing admin.
func (r *repository) CreateForAdmins(ctx context.Context, template Notification) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO notifications (id, user_id, type, title, message, link, is_read, related_id, created_at)
			SELECT gen_random_uuid(), u.id, $1, $2, $3, $4, false, $5, NOW()
			FROM users u
			WHERE u.role = 'Admin' AND u.is_active = true
		`, template.Type, template.Title, template.Message, template.Link, template.RelatedID)
		return err
	}

	var adminIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("users").
		Where("role = ?", "Admin").
		Where("is_active = ?", true).
		Pluck("id", &adminIDs).Error
	if err != nil {
		return err
	}

	for _, adminID := range adminIDs {
		n := template
		n.ID = uuid.New()
		n.UserID = adminID
		if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}
