package permit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zkkaa/sipetak-sub000/internal/permit"
)

func TestDeriveCertificate(t *testing.T) {
	applied := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("formats number from id and applied date", func(t *testing.T) {
		l := permit.UmkmLocation{
			ID:           7,
			NamaLapak:    "Bakso Pak Min",
			BusinessType: "Kuliner",
			IzinStatus:   permit.StatusDiterima,
			DateApplied:  applied,
		}

		cert := permit.DeriveCertificate(l, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, "SIPETAK-007/03/2024", cert.NomorSertifikat)
		assert.Equal(t, "2024-03-10", cert.TanggalTerbit)
		assert.Equal(t, "2025-03-10", cert.TanggalKedaluwarsa)
		assert.Equal(t, permit.CertStatusAktif, cert.Status)
	})

	t.Run("expired when past one year", func(t *testing.T) {
		l := permit.UmkmLocation{
			ID:          7,
			IzinStatus:  permit.StatusDiterima,
			DateApplied: applied,
		}

		cert := permit.DeriveCertificate(l, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, permit.CertStatusKedaluwarsa, cert.Status)
	})

	t.Run("prefers stored expiry date", func(t *testing.T) {
		expired := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		l := permit.UmkmLocation{
			ID:          12,
			IzinStatus:  permit.StatusDiterima,
			DateApplied: applied,
			DateExpired: &expired,
		}

		cert := permit.DeriveCertificate(l, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, "SIPETAK-012/03/2024", cert.NomorSertifikat)
		assert.Equal(t, "2024-12-31", cert.TanggalKedaluwarsa)
		assert.Equal(t, permit.CertStatusKedaluwarsa, cert.Status)
	})

	t.Run("pads wide ids without truncation", func(t *testing.T) {
		l := permit.UmkmLocation{
			ID:          1042,
			IzinStatus:  permit.StatusDiterima,
			DateApplied: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		}

		cert := permit.DeriveCertificate(l, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, "SIPETAK-1042/11/2025", cert.NomorSertifikat)
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"diajukan dapat diterima", permit.StatusDiajukan, permit.StatusDiterima, true},
		{"diajukan dapat ditolak", permit.StatusDiajukan, permit.StatusDitolak, true},
		{"diterima ke pengajuan penghapusan", permit.StatusDiterima, permit.StatusPengajuanPenghapusan, true},
		{"pengajuan penghapusan kembali ke diterima", permit.StatusPengajuanPenghapusan, permit.StatusDiterima, true},
		{"ditolak terminal", permit.StatusDitolak, permit.StatusDiajukan, false},
		{"ditolak tidak bisa diterima", permit.StatusDitolak, permit.StatusDiterima, false},
		{"diterima tidak bisa ditolak", permit.StatusDiterima, permit.StatusDitolak, false},
		{"diajukan tidak bisa langsung dihapus", permit.StatusDiajukan, permit.StatusPengajuanPenghapusan, false},
		{"status asing ditolak", "Unknown", permit.StatusDiterima, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, permit.CanTransition(tc.from, tc.to))
		})
	}
}
