package permit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=permit_repo.go -destination=mock/permit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateLocation(ctx context.Context, l *UmkmLocation) error
	CreateSubmission(ctx context.Context, s *Submission) error
	FindByID(ctx context.Context, id uint) (*UmkmLocation, error)
	FindAll(ctx context.Context) ([]UmkmLocation, error)
	FindAllByOwner(ctx context.Context, userID string) ([]UmkmLocation, error)
	FindSubmissions(ctx context.Context, locationID uint) ([]Submission, error)
	UpdateStatus(ctx context.Context, id uint, status string, dateExpired *time.Time) error
	DeleteLocation(ctx context.Context, id uint) error
	DeleteSubmissionsByLocation(ctx context.Context, locationID uint) error
	MasterLocationStatus(ctx context.Context, masterLocationID string) (string, error)
	SetMasterLocationStatus(ctx context.Context, masterLocationID, status string) error
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

func (r *repository) CreateLocation(ctx context.Context, l *UmkmLocation) error {
	if r.tx != nil {
		return r.tx.QueryRowContext(ctx, `
			INSERT INTO umkm_locations
				(user_id, master_location_id, nama_lapak, business_type, izin_status, date_applied, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id
		`, l.UserID, l.MasterLocationID, l.NamaLapak, l.BusinessType, l.IzinStatus, l.DateApplied).Scan(&l.ID)
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) CreateSubmission(ctx context.Context, s *Submission) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO submissions
				(id, umkm_location_id, ktp_file_url, surat_lainnya_url, description, date_submitted)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.ID, s.UmkmLocationID, s.KTPFileURL, s.SuratLainnyaURL, s.Description, s.DateSubmitted)
		return err
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*UmkmLocation, error) {
	if r.tx != nil {
		var l UmkmLocation
		err := r.tx.QueryRowContext(ctx, `
			SELECT id, user_id, master_location_id, nama_lapak, business_type, izin_status, date_applied, date_expired
			FROM umkm_locations WHERE id = $1
		`, id).Scan(&l.ID, &l.UserID, &l.MasterLocationID, &l.NamaLapak, &l.BusinessType, &l.IzinStatus, &l.DateApplied, &l.DateExpired)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		return &l, err
	}

	var l UmkmLocation
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]UmkmLocation, error) {
	var locations []UmkmLocation
	err := r.db.WithContext(ctx).
		Order("date_applied ASC, id ASC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) FindAllByOwner(ctx context.Context, userID string) ([]UmkmLocation, error) {
	var locations []UmkmLocation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_applied DESC, id DESC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) FindSubmissions(ctx context.Context, locationID uint) ([]Submission, error) {
	var submissions []Submission
	err := r.db.WithContext(ctx).
		Where("umkm_location_id = ?", locationID).
		Order("date_submitted ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status string, dateExpired *time.Time) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE umkm_locations
			SET izin_status = $2, date_expired = COALESCE($3, date_expired), updated_at = NOW()
			WHERE id = $1
		`, id, status, dateExpired)
		return err
	}

	updates := map[string]any{"izin_status": status}
	if dateExpired != nil {
		updates["date_expired"] = *dateExpired
	}
	return r.db.WithContext(ctx).
		Model(&UmkmLocation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteLocation(ctx context.Context, id uint) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `DELETE FROM umkm_locations WHERE id = $1`, id)
		return err
	}
	return r.db.WithContext(ctx).Delete(&UmkmLocation{}, "id = ?", id).Error
}

func (r *repository) DeleteSubmissionsByLocation(ctx context.Context, locationID uint) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `DELETE FROM submissions WHERE umkm_location_id = $1`, locationID)
		return err
	}
	return r.db.WithContext(ctx).Delete(&Submission{}, "umkm_location_id = ?", locationID).Error
}

func (r *repository) MasterLocationStatus(ctx context.Context, masterLocationID string) (string, error) {
	if r.tx != nil {
		var status string
		err := r.tx.QueryRowContext(ctx, `
			SELECT status FROM master_locations WHERE id = $1
		`, masterLocationID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return "", gorm.ErrRecordNotFound
		}
		return status, err
	}

	var status string
	err := r.db.WithContext(ctx).
		Table("master_locations").
		Where("id = ?", masterLocationID).
		Select("status").
		Take(&status).Error
	return status, err
}

func (r *repository) SetMasterLocationStatus(ctx context.Context, masterLocationID, status string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE master_locations SET status = $2 WHERE id = $1
		`, masterLocationID, status)
		return err
	}
	return r.db.WithContext(ctx).
		Table("master_locations").
		Where("id = ?", masterLocationID).
		Update("status", status).Error
}
