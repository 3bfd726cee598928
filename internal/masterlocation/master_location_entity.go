package masterlocation

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusTersedia  = "Tersedia"
	StatusTerisi    = "Terisi"
	StatusTerlarang = "Terlarang"
)

// MasterLocation adalah titik zonasi yang ditetapkan pemerintah daerah.
// Terlarang hanya di-set admin dan tidak pernah diubah oleh alur izin;
// alur izin hanya memindah Tersedia <-> Terisi.
type MasterLocation struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Latitude          float64   `gorm:"type:double precision;not null"`
	Longitude         float64   `gorm:"type:double precision;not null"`
	Status            string    `gorm:"type:varchar(20);not null;default:'Tersedia';index"`
	ReasonRestriction *string   `gorm:"type:text"`
	PenandaName       string    `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time
}

func (MasterLocation) TableName() string {
	return "master_locations"
}
