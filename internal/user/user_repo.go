package user

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/auth"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context, role string, limit, offset int) ([]auth.User, int64, error)
	FindByID(ctx context.Context, id string) (*auth.User, error)
	Update(ctx context.Context, id, nama, phone string, nik *string) error
	SetActive(ctx context.Context, id string, active bool) (int64, error)

	// Langkah-langkah cascade delete, urutannya diatur service.
	DeleteSubmissionsByUser(ctx context.Context, userID string) error
	DeleteDeletionRequestsByUser(ctx context.Context, userID string) error
	ClearReportHandler(ctx context.Context, userID string) error
	FreeMasterLocations(ctx context.Context, userID string) error
	DeleteLocationsByUser(ctx context.Context, userID string) error
	DeleteNotificationsByUser(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) (int64, error)
}

type repository struct {
	gdb *gorm.DB
	db  *sql.DB
	tx  *sql.Tx
}

func NewRepository(gdb *gorm.DB, db *sql.DB) Repository {
	return &repository{gdb: gdb, db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{gdb: r.gdb, db: r.db, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) FindAll(ctx context.Context, role string, limit, offset int) ([]auth.User, int64, error) {
	query := r.gdb.WithContext(ctx).Model(&auth.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []auth.User
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var u auth.User
	if err := r.gdb.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, id, nama, phone string, nik *string) error {
	return r.gdb.WithContext(ctx).
		Model(&auth.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"nama":  nama,
			"phone": phone,
			"nik":   nik,
		}).Error
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) (int64, error) {
	res := r.gdb.WithContext(ctx).
		Model(&auth.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteSubmissionsByUser(ctx context.Context, userID string) error {
	_, err := r.execer().ExecContext(ctx, `
		DELETE FROM submissions
		WHERE umkm_location_id IN (
			SELECT id FROM umkm_locations WHERE user_id = $1
		)
	`, userID)
	return err
}

func (r *repository) DeleteDeletionRequestsByUser(ctx context.Context, userID string) error {
	_, err := r.execer().ExecContext(ctx, `
		DELETE FROM deletion_requests WHERE user_id = $1
	`, userID)
	return err
}

func (r *repository) ClearReportHandler(ctx context.Context, userID string) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE reports SET admin_handler_id = NULL, updated_at = NOW()
		WHERE admin_handler_id = $1
	`, userID)
	return err
}

// FreeMasterLocations mengembalikan titik master yang diduduki lokasi
// milik user ke Tersedia. Titik Terlarang tidak disentuh.
func (r *repository) FreeMasterLocations(ctx context.Context, userID string) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE master_locations SET status = 'Tersedia', updated_at = NOW()
		WHERE status = 'Terisi'
		  AND id IN (
			SELECT master_location_id FROM umkm_locations
			WHERE user_id = $1
			  AND izin_status IN ('Diterima', 'Pengajuan Penghapusan')
		  )
	`, userID)
	return err
}

func (r *repository) DeleteLocationsByUser(ctx context.Context, userID string) error {
	_, err := r.execer().ExecContext(ctx, `
		DELETE FROM umkm_locations WHERE user_id = $1
	`, userID)
	return err
}

func (r *repository) DeleteNotificationsByUser(ctx context.Context, userID string) error {
	_, err := r.execer().ExecContext(ctx, `
		DELETE FROM notifications WHERE user_id = $1
	`, userID)
	return err
}

func (r *repository) DeleteUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.execer().ExecContext(ctx, `
		DELETE FROM users WHERE id = $1
	`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
