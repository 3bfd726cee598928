package deletionrequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// QueueRow adalah hasil join antrian admin (request + lokasi + pemilik).
type QueueRow struct {
	DeletionRequest
	NamaLapak          string `gorm:"column:nama_lapak"`
	BusinessType       string `gorm:"column:business_type"`
	MasterLocationName string `gorm:"column:master_location_name"`
	OwnerName          string `gorm:"column:owner_name"`
	OwnerEmail         string `gorm:"column:owner_email"`
}

//go:generate mockgen -source=deletion_request_repo.go -destination=mock/deletion_request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dr *DeletionRequest) error
	FindByID(ctx context.Context, id string) (*DeletionRequest, error)
	PendingExists(ctx context.Context, locationID uint) (bool, error)
	LastRejectedForOwnerLocation(ctx context.Context, userID string, locationID uint) (*DeletionRequest, error)
	UpdateReview(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error
	Delete(ctx context.Context, id string) error
	Queue(ctx context.Context) ([]QueueRow, error)
	FindAllByOwner(ctx context.Context, userID string) ([]DeletionRequest, error)
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

func (r *repository) Create(ctx context.Context, dr *DeletionRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO deletion_requests
				(id, umkm_location_id, user_id, reason, status, requested_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, dr.ID, dr.UmkmLocationID, dr.UserID, dr.Reason, dr.Status, dr.RequestedAt)
		return mapDeletionRequestError(err)
	}
	return mapDeletionRequestError(r.db.WithContext(ctx).Create(dr).Error)
}

func (r *repository) FindByID(ctx context.Context, id string) (*DeletionRequest, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, umkm_location_id, user_id, reason, status, requested_at,
			       reviewed_by, reviewed_at, rejection_reason, created_at, updated_at
			FROM deletion_requests
			WHERE id = $1
		`, id)
		return scanDeletionRequest(row)
	}

	var dr DeletionRequest
	if err := r.db.WithContext(ctx).First(&dr, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dr, nil
}

func (r *repository) PendingExists(ctx context.Context, locationID uint) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM deletion_requests
			WHERE umkm_location_id = $1 AND status = $2
		)
	`
	var exists bool
	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, query, locationID, StatusPending).Scan(&exists)
		return exists, err
	}
	err := r.db.WithContext(ctx).Raw(query, locationID, StatusPending).Scan(&exists).Error
	return exists, err
}

func (r *repository) LastRejectedForOwnerLocation(ctx context.Context, userID string, locationID uint) (*DeletionRequest, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, umkm_location_id, user_id, reason, status, requested_at,
			       reviewed_by, reviewed_at, rejection_reason, created_at, updated_at
			FROM deletion_requests
			WHERE user_id = $1 AND umkm_location_id = $2 AND status = $3
			ORDER BY reviewed_at DESC
			LIMIT 1
		`, userID, locationID, StatusRejected)
		return scanDeletionRequest(row)
	}

	var dr DeletionRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND umkm_location_id = ? AND status = ?", userID, locationID, StatusRejected).
		Order("reviewed_at DESC").
		First(&dr).Error
	if err != nil {
		return nil, err
	}
	return &dr, nil
}

func (r *repository) UpdateReview(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE deletion_requests
			SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, updated_at = NOW()
			WHERE id = $1
		`, id, status, reviewedBy, reviewedAt, rejectionReason)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&DeletionRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           status,
			"reviewed_by":      reviewedBy,
			"reviewed_at":      reviewedAt,
			"rejection_reason": rejectionReason,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `DELETE FROM deletion_requests WHERE id = $1`, id)
		return err
	}
	return r.db.WithContext(ctx).Delete(&DeletionRequest{}, "id = ?", id).Error
}

func (r *repository) Queue(ctx context.Context) ([]QueueRow, error) {
	var rows []QueueRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT dr.*,
		       ul.nama_lapak,
		       ul.business_type,
		       ml.penanda_name AS master_location_name,
		       u.nama  AS owner_name,
		       u.email AS owner_email
		FROM deletion_requests dr
		JOIN umkm_locations ul   ON ul.id = dr.umkm_location_id
		JOIN master_locations ml ON ml.id = ul.master_location_id
		JOIN users u             ON u.id = dr.user_id
		WHERE dr.status = ?
		ORDER BY dr.requested_at ASC
	`, StatusPending).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindAllByOwner(ctx context.Context, userID string) ([]DeletionRequest, error) {
	var requests []DeletionRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func scanDeletionRequest(row *sql.Row) (*DeletionRequest, error) {
	var dr DeletionRequest
	err := row.Scan(
		&dr.ID,
		&dr.UmkmLocationID,
		&dr.UserID,
		&dr.Reason,
		&dr.Status,
		&dr.RequestedAt,
		&dr.ReviewedBy,
		&dr.ReviewedAt,
		&dr.RejectionReason,
		&dr.CreatedAt,
		&dr.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dr, nil
}
