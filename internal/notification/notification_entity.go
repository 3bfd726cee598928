package notification

import (
	"time"

	"github.com/google/uuid"
)

// Tipe notifikasi mengikuti event bisnis yang memicunya
const (
	TypeSubmissionApproved = "submission_approved"
	TypeSubmissionRejected = "submission_rejected"
	TypeDeletionRequested  = "deletion_requested"
	TypeDeletionApproved   = "deletion_approved"
	TypeDeletionRejected   = "deletion_rejected"
	TypeReportCreated      = "report_created"
)

// Notification adalah side-channel tulis-saja: tidak pernah dibaca
// oleh logika bisnis, hanya oleh pemiliknya lewat API.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	Type      string    `gorm:"type:varchar(40);not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	Link      string    `gorm:"type:text"`
	IsRead    bool      `gorm:"default:false;index:idx_notifications_user_read"`
	RelatedID *string   `gorm:"type:varchar(64)"`

	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
