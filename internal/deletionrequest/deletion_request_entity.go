package deletionrequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ReviewCooldown adalah masa tunggu sejak penolakan terakhir sebelum
// pemilik boleh mengajukan penghapusan ulang untuk lokasi yang sama.
const ReviewCooldown = 72 * time.Hour

// DeletionRequest adalah pengajuan penghapusan lokasi ber-izin aktif.
// Paling banyak satu baris Pending per lokasi, dijaga partial unique
// index uq_deletion_requests_pending di sisi database.
type DeletionRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UmkmLocationID uint      `gorm:"not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason         string    `gorm:"type:text;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'Pending';index"`
	RequestedAt    time.Time `gorm:"not null"`

	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DeletionRequest) TableName() string {
	return "deletion_requests"
}
