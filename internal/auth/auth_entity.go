package auth

import (
	"time"

	"github.com/google/uuid"
)

// User tidak memakai soft delete: penghapusan akun adalah hard delete
// dengan pembersihan relasi berurutan di modul user.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nama     string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'UMKM'"`
	NIK      *string   `gorm:"column:nik;type:varchar(16);uniqueIndex"`
	Phone    string    `gorm:"type:varchar(20)"`
	IsActive bool      `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
