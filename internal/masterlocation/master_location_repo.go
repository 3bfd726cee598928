package masterlocation

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=master_location_repo.go -destination=mock/master_location_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, m *MasterLocation) error
	FindAll(ctx context.Context, status string) ([]MasterLocation, error)
	FindByID(ctx context.Context, id string) (*MasterLocation, error)
	UpdateStatus(ctx context.Context, id, status string, reason *string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *MasterLocation) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAll(ctx context.Context, status string) ([]MasterLocation, error) {
	db := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var locations []MasterLocation
	err := db.Find(&locations).Error
	return locations, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*MasterLocation, error) {
	var m MasterLocation
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string, reason *string) error {
	updates := map[string]any{"status": status}
	if reason != nil {
		updates["reason_restriction"] = *reason
	}
	return r.db.WithContext(ctx).
		Model(&MasterLocation{}).
		Where("id = ?", id).
		Updates(updates).Error
}
