package report

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Report) error
	FindByID(ctx context.Context, id string) (*Report, error)
	FindAll(ctx context.Context, status string) ([]Report, error)
	UpdateHandling(ctx context.Context, id, status string, adminHandlerID *uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, rep *Report) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO reports
				(id, type, description, latitude, longitude, photo_url, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		`, rep.ID, rep.Type, rep.Description, rep.Latitude, rep.Longitude, rep.PhotoURL, rep.Status)
		return err
	}
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Report, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, type, description, latitude, longitude, photo_url, status,
			       admin_handler_id, created_at, updated_at
			FROM reports
			WHERE id = $1
		`, id)

		var rep Report
		err := row.Scan(
			&rep.ID,
			&rep.Type,
			&rep.Description,
			&rep.Latitude,
			&rep.Longitude,
			&rep.PhotoURL,
			&rep.Status,
			&rep.AdminHandlerID,
			&rep.CreatedAt,
			&rep.UpdatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &rep, nil
	}

	var rep Report
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Report, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []Report
	err := query.Find(&reports).Error
	return reports, err
}

func (r *repository) UpdateHandling(ctx context.Context, id, status string, adminHandlerID *uuid.UUID) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE reports
			SET status = $2, admin_handler_id = COALESCE($3, admin_handler_id), updated_at = NOW()
			WHERE id = $1
		`, id, status, adminHandlerID)
		return err
	}

	updates := map[string]any{"status": status}
	if adminHandlerID != nil {
		updates["admin_handler_id"] = adminHandlerID
	}
	return r.db.WithContext(ctx).
		Model(&Report{}).
		Where("id = ?", id).
		Updates(updates).Error
}
