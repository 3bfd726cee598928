package report

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusBelumDiperiksa = "Belum Diperiksa"
	StatusSedangDiproses = "Sedang Diproses"
	StatusSelesai        = "Selesai"
)

// CanTransition membatasi alur penanganan laporan warga:
// Belum Diperiksa -> Sedang Diproses -> Selesai, tanpa jalan mundur.
func CanTransition(from, to string) bool {
	switch from {
	case StatusBelumDiperiksa:
		return to == StatusSedangDiproses
	case StatusSedangDiproses:
		return to == StatusSelesai
	default:
		return false
	}
}

// Report adalah laporan warga atas lapak liar atau masalah lokasi.
// Dibuat tanpa login, jadi tidak ada FK pelapor.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text;not null"`
	Latitude    float64   `gorm:"type:double precision;not null"`
	Longitude   float64   `gorm:"type:double precision;not null"`
	PhotoURL    *string   `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Belum Diperiksa';index"`

	AdminHandlerID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Report) TableName() string {
	return "reports"
}
