package app

import (
	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/auth"
	"github.com/zkkaa/sipetak-sub000/internal/deletionrequest"
	"github.com/zkkaa/sipetak-sub000/internal/masterlocation"
	"github.com/zkkaa/sipetak-sub000/internal/notification"
	"github.com/zkkaa/sipetak-sub000/internal/permit"
	"github.com/zkkaa/sipetak-sub000/internal/report"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&auth.User{},
		&masterlocation.MasterLocation{},
		&permit.UmkmLocation{},
		&permit.Submission{},
		&deletionrequest.DeletionRequest{},
		&report.Report{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	// Paling banyak satu request Pending per lokasi. AutoMigrate tidak
	// bisa membuat partial index, jadi dibuat manual.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_deletion_requests_pending
		ON deletion_requests (umkm_location_id)
		WHERE status = 'Pending'
	`).Error; err != nil {
		return err
	}

	return db.Exec(`
		CREATE TABLE IF NOT EXISTS outbox_events (
			id UUID PRIMARY KEY,
			request_id TEXT,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			topic TEXT NOT NULL,
			payload JSONB NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			retry_count INT NOT NULL DEFAULT 0,
			error_message TEXT,
			next_retry_at TIMESTAMPTZ,
			processed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`).Error
}
