package permit

import (
	"fmt"
	"time"
)

const (
	CertStatusAktif       = "Aktif"
	CertStatusKedaluwarsa = "Kedaluwarsa"
)

// DeriveCertificate menyintesis sertifikat dari record izin yang sudah
// Diterima. Murni derivasi, tidak ada yang disimpan.
func DeriveCertificate(l UmkmLocation, now time.Time) CertificateResponse {
	nomor := fmt.Sprintf("SIPETAK-%03d/%02d/%d",
		l.ID,
		int(l.DateApplied.Month()),
		l.DateApplied.Year(),
	)

	expiry := l.DateApplied.AddDate(1, 0, 0)
	if l.DateExpired != nil {
		expiry = *l.DateExpired
	}

	status := CertStatusAktif
	if expiry.Before(now) {
		status = CertStatusKedaluwarsa
	}

	return CertificateResponse{
		NomorSertifikat:    nomor,
		NamaLapak:          l.NamaLapak,
		BusinessType:       l.BusinessType,
		TanggalTerbit:      l.DateApplied.Format("2006-01-02"),
		TanggalKedaluwarsa: expiry.Format("2006-01-02"),
		Status:             status,
	}
}
