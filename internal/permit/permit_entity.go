package permit

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDiajukan             = "Diajukan"
	StatusDiterima             = "Diterima"
	StatusDitolak              = "Ditolak"
	StatusPengajuanPenghapusan = "Pengajuan Penghapusan"
)

// CanTransition adalah satu-satunya sumber kebenaran perpindahan status izin.
// Ditolak terminal; penghapusan yang disetujui menghapus baris, bukan transisi.
func CanTransition(from, to string) bool {
	switch from {
	case StatusDiajukan:
		return to == StatusDiterima || to == StatusDitolak
	case StatusDiterima:
		return to == StatusPengajuanPenghapusan
	case StatusPengajuanPenghapusan:
		return to == StatusDiterima
	default:
		return false
	}
}

// UmkmLocation adalah record izin lapak. ID numerik auto-increment karena
// nomor sertifikat diturunkan dari ID tersebut (SIPETAK-007/03/2024).
type UmkmLocation struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	MasterLocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	NamaLapak        string    `gorm:"type:varchar(255);not null"`
	BusinessType     string    `gorm:"type:varchar(100);not null"`
	IzinStatus       string    `gorm:"type:varchar(30);not null;default:'Diajukan';index"`
	DateApplied      time.Time `gorm:"type:date;not null"`
	DateExpired      *time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UmkmLocation) TableName() string {
	return "umkm_locations"
}

// Submission menyimpan referensi dokumen pendukung pengajuan izin.
// Ikut terhapus saat lokasinya dihapus.
type Submission struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UmkmLocationID  uint      `gorm:"not null;index"`
	KTPFileURL      string    `gorm:"column:ktp_file_url;type:text;not null"`
	SuratLainnyaURL *string   `gorm:"column:surat_lainnya_url;type:text"`
	Description     string    `gorm:"type:text"`
	DateSubmitted   time.Time `gorm:"not null"`
}

func (Submission) TableName() string {
	return "submissions"
}
